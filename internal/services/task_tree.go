package services

import "github.com/yukikurage/project-tasks-api/internal/models"

// TaskTree is a parent task paired with its direct subtasks.
type TaskTree struct {
	Parent   models.Task
	Children []models.Task
}

// BuildTrees groups a flat task list into one tree per parent task, in the
// order the parents appear. Children keep their relative input order.
// Subtasks whose parent is not in the input are dropped.
func BuildTrees(tasks []models.Task) []TaskTree {
	trees, _ := buildTrees(tasks)
	return trees
}

// buildTrees also returns how many subtasks were dropped for lack of a parent.
func buildTrees(tasks []models.Task) ([]TaskTree, int) {
	parents := make([]models.Task, 0, len(tasks))
	groups := make(map[uint64][]models.Task)

	for _, task := range tasks {
		if task.ParentTaskID == nil {
			parents = append(parents, task)
			continue
		}
		groups[*task.ParentTaskID] = append(groups[*task.ParentTaskID], task)
	}

	trees := make([]TaskTree, 0, len(parents))
	for _, parent := range parents {
		children, ok := groups[parent.ID]
		if !ok {
			children = []models.Task{}
		}
		delete(groups, parent.ID)
		trees = append(trees, TaskTree{Parent: parent, Children: children})
	}

	orphans := 0
	for _, group := range groups {
		orphans += len(group)
	}

	return trees, orphans
}
