package httpapi

import (
	"context"

	"github.com/benjamonnguyen/todo"
)

func (c *Client) GetTasks(ctx context.Context, params todo.ListTasksParams) ([]todo.Task, error) {
	userID, err := c.requireUserID()
	if err != nil {
		return nil, err
	}

	endpoint := TasksEndpoint(userID)
	if q := encodeListTasksParams(params); q != "" {
		endpoint += "?" + q
	}

	var tasks []todo.Task
	if err := c.get(ctx, endpoint, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []todo.Task{}
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id int) (todo.Task, error) {
	userID, err := c.requireUserID()
	if err != nil {
		return todo.Task{}, err
	}

	var task todo.Task
	if err := c.get(ctx, TaskEndpoint(userID, id), &task); err != nil {
		return todo.Task{}, err
	}
	return task, nil
}

func (c *Client) CreateTask(ctx context.Context, req todo.CreateTaskRequest) (todo.Task, error) {
	userID, err := c.requireUserID()
	if err != nil {
		return todo.Task{}, err
	}

	var task todo.Task
	if err := c.post(ctx, TasksEndpoint(userID), req, &task); err != nil {
		return todo.Task{}, err
	}
	return task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int, req todo.UpdateTaskRequest) (todo.Task, error) {
	userID, err := c.requireUserID()
	if err != nil {
		return todo.Task{}, err
	}

	var task todo.Task
	if err := c.put(ctx, TaskEndpoint(userID, id), req, &task); err != nil {
		return todo.Task{}, err
	}
	return task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int) error {
	userID, err := c.requireUserID()
	if err != nil {
		return err
	}
	return c.delete(ctx, TaskEndpoint(userID, id), nil)
}

// ToggleTaskComplete flips the task between pending and completed. The
// service decides the resulting status.
func (c *Client) ToggleTaskComplete(ctx context.Context, id int) (todo.Task, error) {
	userID, err := c.requireUserID()
	if err != nil {
		return todo.Task{}, err
	}

	var task todo.Task
	if err := c.patch(ctx, TaskCompleteEndpoint(userID, id), nil, &task); err != nil {
		return todo.Task{}, err
	}
	return task, nil
}
