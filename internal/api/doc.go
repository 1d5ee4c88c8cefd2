// Package api handles incoming HTTP requests for the task prioritization
// service: task record CRUD, batch analysis and strategy listing. It
// translates HTTP concerns into calls on internal/service and maps service
// errors back onto status codes and client-safe messages.
package api
