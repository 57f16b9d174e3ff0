package response

import "github.com/gin-gonic/gin"

// Page describes one side of a pagination cursor.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries next/prev descriptors. A side is present only when a
// further/previous page actually exists.
type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

// Paginate builds descriptors for page/limit against total matching records.
func Paginate(page, limit, total int) Pagination {
	var p Pagination
	if page*limit < total {
		p.Next = &Page{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &Page{Page: page - 1, Limit: limit}
	}
	return p
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"message": message,
	})
}

// List renders a paginated collection with count (this page) and total (all pages).
func List(c *gin.Context, statusCode int, data interface{}, count, total int, pagination Pagination) {
	c.JSON(statusCode, gin.H{
		"success":    true,
		"data":       data,
		"count":      count,
		"total":      total,
		"pagination": pagination,
	})
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
	})
}

// ValidationErrors renders a field-level error list. Never combined with message.
func ValidationErrors(c *gin.Context, statusCode int, errs []string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"errors":  errs,
	})
}
