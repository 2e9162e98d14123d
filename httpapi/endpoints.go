package httpapi

import "fmt"

const (
	EndpointRegister = "/api/auth/register"
	EndpointLogin    = "/api/auth/login"
	EndpointLogout   = "/api/auth/logout"
	EndpointMe       = "/api/auth/me"
)

func TasksEndpoint(userID int) string {
	return fmt.Sprintf("/api/%d/tasks", userID)
}

func TaskEndpoint(userID, taskID int) string {
	return fmt.Sprintf("/api/%d/tasks/%d", userID, taskID)
}

func TaskCompleteEndpoint(userID, taskID int) string {
	return fmt.Sprintf("/api/%d/tasks/%d/complete", userID, taskID)
}
