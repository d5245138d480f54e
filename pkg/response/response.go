package response

import "github.com/gin-gonic/gin"

// Response documents the envelope shared by every reply. The payload sits
// next to these fields under the entity's own key, e.g. "order" or "orders".
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Pagination is attached to list replies
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Success returns the success envelope with data stored under key.
// An empty key sends the message alone.
func Success(message, key string, data interface{}) gin.H {
	body := gin.H{"success": true, "message": message}
	if key != "" {
		body[key] = data
	}
	return body
}

// List returns the success envelope of a paginated collection
func List(message, key string, data interface{}, p Pagination) gin.H {
	body := Success(message, key, data)
	body["pagination"] = p
	return body
}

// Error returns the error envelope
func Error(message string) gin.H {
	return gin.H{"success": false, "message": message}
}
