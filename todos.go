package main

import (
	"net/http"
	"strings"

	"delapp/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// findUserTodo loads a todo only when it belongs to userID. Ownership is
// part of the query, not an afterthought.
func findUserTodo(userID, id uuid.UUID) *models.Todo {
	var todo models.Todo
	if err := db.Where("user_id = ? AND id = ?", userID, id).First(&todo).Error; err != nil {
		return nil
	}
	return &todo
}

func createTodoHandler(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fail("not authenticated"))
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fail("invalid todo data"))
		return
	}

	todo := models.Todo{UserID: user.ID, Title: req.Title, Description: req.Description}
	if err := db.Create(&todo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, serverError("failed to create todo"))
		return
	}

	c.JSON(http.StatusOK, success("todo created successfully", gin.H{"id": todo.ID}))
}

func listTodosHandler(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fail("not authenticated"))
		return
	}

	q := db.Where("user_id = ?", user.ID)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pat := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pat, pat)
	}

	todos := []models.Todo{}
	if err := q.Order("created_at desc").Find(&todos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, serverError("failed to list todos"))
		return
	}

	c.JSON(http.StatusOK, success("todo list retrieved successfully", gin.H{"todos": todos}))
}

func getTodoHandler(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fail("not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, fail("invalid todo id"))
		return
	}

	todo := findUserTodo(user.ID, id)
	if todo == nil {
		c.JSON(http.StatusNotFound, fail("todo data not found"))
		return
	}

	c.JSON(http.StatusOK, success("todo data retrieved successfully", gin.H{"todo": todo}))
}

func updateTodoHandler(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fail("not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, fail("invalid todo id"))
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
		IsFinished  *bool  `json:"isFinished" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fail("invalid todo data"))
		return
	}

	todo := findUserTodo(user.ID, id)
	if todo == nil {
		c.JSON(http.StatusNotFound, fail("todo data not found"))
		return
	}

	todo.Title = req.Title
	todo.Description = req.Description
	todo.IsFinished = *req.IsFinished
	if err := db.Save(todo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, serverError("failed to update todo"))
		return
	}

	c.JSON(http.StatusOK, success("todo data updated successfully", nil))
}

func deleteTodoHandler(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fail("not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, fail("invalid todo id"))
		return
	}

	todo := findUserTodo(user.ID, id)
	if todo == nil {
		c.JSON(http.StatusNotFound, fail("todo data not found"))
		return
	}

	if err := db.Delete(todo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, serverError("failed to delete todo"))
		return
	}
	if todo.Cover != "" {
		deleteCover(todo.Cover)
	}

	c.JSON(http.StatusOK, success("todo data deleted successfully", nil))
}

// uploadTodoCoverHandler replaces the todo's cover image. The stored
// filename is derived from the todo id, never from client input.
func uploadTodoCoverHandler(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fail("not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, fail("invalid todo id"))
		return
	}

	todo := findUserTodo(user.ID, id)
	if todo == nil {
		c.JSON(http.StatusNotFound, fail("todo data not found"))
		return
	}

	file, err := c.FormFile("cover")
	if err != nil {
		c.JSON(http.StatusBadRequest, fail("cover file must not be empty"))
		return
	}
	if file.Size > maxCoverSize {
		c.JSON(http.StatusBadRequest, fail("cover file too large (max 5MB)"))
		return
	}

	filename, err := storeCover(file, todo.ID)
	if err == errNotImage {
		c.JSON(http.StatusBadRequest, fail("cover file must be a valid image"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, serverError("failed to store cover file"))
		return
	}

	// Remove the previous cover unless the new one overwrote it in place.
	if todo.Cover != "" && todo.Cover != filename {
		deleteCover(todo.Cover)
	}

	todo.Cover = filename
	if err := db.Save(todo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, serverError("failed to update todo cover"))
		return
	}

	c.JSON(http.StatusOK, success("todo cover updated successfully", gin.H{"cover": filename}))
}

func getTodoCoverHandler(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fail("not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, fail("invalid todo id"))
		return
	}

	todo := findUserTodo(user.ID, id)
	if todo == nil {
		c.JSON(http.StatusNotFound, fail("todo data not found"))
		return
	}
	if todo.Cover == "" || !coverExists(todo.Cover) {
		c.JSON(http.StatusNotFound, fail("todo cover not found"))
		return
	}

	c.File(coverPath(todo.Cover))
}
