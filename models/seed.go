// models/seed.go

package models

import "time"

// Seed collections shown to a fresh guest session so the app is not empty on
// first open. Authenticated users never receive these; their collections
// start empty in the remote store.

func SeedTasks(now time.Time) []Task {
	today := now
	tomorrow := now.AddDate(0, 0, 1)
	inThreeDays := now.AddDate(0, 0, 3)
	nextWeek := now.AddDate(0, 0, 7)
	return []Task{
		{
			ID:          "1",
			Title:       "Complete Algebra Homework",
			Subject:     "Mathematics",
			Category:    CategoryHomework,
			DueDate:     today,
			Description: "Chapter 3, problems 1-15.",
			Reminder:    ReminderOneHour,
		},
		{
			ID:          "2",
			Title:       "Study for Physics Midterm",
			Subject:     "Physics",
			Category:    CategoryStudy,
			DueDate:     tomorrow,
			Description: "Review chapters on kinematics and dynamics.",
			Reminder:    ReminderOneDay,
		},
		{
			ID:          "3",
			Title:       "Write Essay on \"The Great Gatsby\"",
			Subject:     "Literature",
			Category:    CategoryProject,
			DueDate:     nextWeek,
			Description: "5-page essay on the theme of the American Dream.",
			Reminder:    ReminderOneDay,
		},
		{
			ID:          "4",
			Title:       "History Presentation",
			Subject:     "History",
			Category:    CategoryProject,
			DueDate:     inThreeDays,
			Completed:   true,
			Description: "Presentation on the Roman Empire.",
			Reminder:    ReminderNone,
		},
	}
}

func SeedClasses() []ClassEvent {
	return []ClassEvent{
		{ID: "c1", Subject: "Mathematics", Day: 1, StartTime: "09:00", EndTime: "10:30", Reminder: ReminderFifteenMin},
		{ID: "c2", Subject: "Physics", Day: 2, StartTime: "11:00", EndTime: "12:30", Reminder: ReminderFifteenMin},
		{ID: "c3", Subject: "Literature", Day: 1, StartTime: "13:00", EndTime: "14:00", Reminder: ReminderNone},
		{ID: "c4", Subject: "Computer Science", Day: 3, StartTime: "10:00", EndTime: "12:00", Reminder: ReminderFifteenMin},
	}
}

func SeedSubjects() []Subject {
	return []Subject{
		{ID: "s1", Name: "Mathematics", Credits: 4, Goal: 90, Color: "blue"},
		{ID: "s2", Name: "Physics", Credits: 4, Goal: 85, Color: "indigo"},
		{ID: "s3", Name: "Literature", Credits: 3, Goal: 88, Color: "purple"},
	}
}

func SeedGrades() []Grade {
	return []Grade{
		{ID: "g1", SubjectID: "s1", Name: "Homework 1", Score: 95, Total: 100, Weight: 10},
		{ID: "g2", SubjectID: "s1", Name: "Midterm", Score: 85, Total: 100, Weight: 30},
		{ID: "g3", SubjectID: "s2", Name: "Lab Report 1", Score: 90, Total: 100, Weight: 20},
		{ID: "g4", SubjectID: "s3", Name: "Essay 1", Score: 88, Total: 100, Weight: 40},
	}
}
