package activity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/workform/internal/models"
)

func taskID(in models.TaskInput, fallback string) string {
	if in.ID != "" {
		return in.ID
	}
	if fallback != "" {
		return fallback
	}
	return uuid.New().String()
}

// firstSeen maps each lower-cased task name to the earliest date it appears
// in prior. prior must be sorted by ascending date.
func firstSeen(prior []models.WorkActivity) map[string]string {
	seen := make(map[string]string)
	for _, a := range prior {
		for _, t := range a.Tasks {
			key := strings.ToLower(t.TaskName)
			if _, ok := seen[key]; !ok {
				seen[key] = a.Date
			}
		}
	}
	return seen
}

// mergeFirstSubmission builds the task list of a new (employee, date)
// record. A task whose name occurs in an earlier activity is flagged as
// updated and carries the earliest such date.
func mergeFirstSubmission(in []models.TaskInput, prior []models.WorkActivity, now time.Time) []models.Task {
	seen := firstSeen(prior)

	tasks := make([]models.Task, 0, len(in))
	for _, t := range in {
		task := models.Task{
			ID:          taskID(t, ""),
			ProjectName: t.ProjectName,
			TaskName:    t.TaskName,
			OutcomeLink: t.OutcomeLink,
			Notes:       t.Notes,
			CreatedAt:   now,
		}
		if date, ok := seen[strings.ToLower(t.TaskName)]; ok {
			task.IsUpdated = true
			task.FirstWorkedOnDate = date
		}
		tasks = append(tasks, task)
	}
	return tasks
}

// mergeResubmission reconciles a same-day resubmission against the stored
// tasks. The result follows the order of in.
func mergeResubmission(in []models.TaskInput, existing []models.Task, now time.Time) []models.Task {
	tasks := make([]models.Task, 0, len(in))
	for _, t := range in {
		if prev, ok := findByName(existing, t.TaskName); ok {
			task := prev
			task.ID = taskID(t, prev.ID)
			task.ProjectName = t.ProjectName
			// Content edits keep OldTaskName; only a rename sets it.
			if prev.OutcomeLink != t.OutcomeLink || prev.Notes != t.Notes {
				task.OutcomeLink = t.OutcomeLink
				task.Notes = t.Notes
				task.IsUpdated = true
				if task.CreatedAt.IsZero() {
					task.CreatedAt = now
				}
				updated := now
				task.UpdatedAt = &updated
			}
			tasks = append(tasks, task)
			continue
		}

		if prev, ok := findRenamed(existing, t); ok {
			updated := now
			tasks = append(tasks, models.Task{
				ID:          taskID(t, prev.ID),
				ProjectName: t.ProjectName,
				TaskName:    t.TaskName,
				OutcomeLink: t.OutcomeLink,
				Notes:       t.Notes,
				OldTaskName: prev.TaskName,
				IsUpdated:   true,
				CreatedAt:   prev.CreatedAt,
				UpdatedAt:   &updated,
			})
			continue
		}

		tasks = append(tasks, models.Task{
			ID:          taskID(t, ""),
			ProjectName: t.ProjectName,
			TaskName:    t.TaskName,
			OutcomeLink: t.OutcomeLink,
			Notes:       t.Notes,
			CreatedAt:   now,
		})
	}
	return tasks
}

func findByName(tasks []models.Task, name string) (models.Task, bool) {
	for _, t := range tasks {
		if t.TaskName == name {
			return t, true
		}
	}
	return models.Task{}, false
}

// findRenamed returns the first stored task in the same project under a
// different name. The project name is compared literally, empty included.
func findRenamed(tasks []models.Task, in models.TaskInput) (models.Task, bool) {
	for _, t := range tasks {
		if t.ProjectName == in.ProjectName && t.TaskName != in.TaskName {
			return t, true
		}
	}
	return models.Task{}, false
}
