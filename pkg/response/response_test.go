package response

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestEnvelopes(t *testing.T) {
	assert.Equal(t, gin.H{"success": true, "message": "Order fetched", "order": 1}, Success("Order fetched", "order", 1))
	assert.Equal(t, gin.H{"success": true, "message": "Order deleted"}, Success("Order deleted", "", nil))
	assert.Equal(t, gin.H{"success": false, "message": "order not found"}, Error("order not found"))

	list := List("Orders fetched", "orders", []int{}, Pagination{Page: 2, Limit: 10, Total: 11})
	assert.Equal(t, true, list["success"])
	assert.Equal(t, Pagination{Page: 2, Limit: 10, Total: 11}, list["pagination"])
}
