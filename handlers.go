package main

import (
	"net/http"

	"delapp/models"
	"delapp/pkg/token"

	"github.com/gin-gonic/gin"
)

func setupRoutes(r *gin.Engine, codec *token.Codec, tokens TokenStore) {
	r.Use(authGate(codec, tokens))

	r.GET("/healthz", healthHandler)
	r.NoRoute(notFoundHandler)

	api := r.Group("/api")
	api.POST("/auth/register", registerHandler)
	api.POST("/auth/login", loginHandler(codec, tokens))

	api.GET("/users/me", meHandler)
	api.PUT("/users/me", updateUserHandler)
	api.PUT("/users/me/password", updatePasswordHandler(tokens))
	api.POST("/users/me/logout", logoutHandler(tokens))

	api.POST("/todos", createTodoHandler)
	api.GET("/todos", listTodosHandler)
	api.GET("/todos/:id", getTodoHandler)
	api.PUT("/todos/:id", updateTodoHandler)
	api.DELETE("/todos/:id", deleteTodoHandler)
	api.POST("/todos/:id/cover", uploadTodoCoverHandler)
	api.GET("/todos/:id/cover", getTodoCoverHandler)

	api.POST("/cash-flows", createCashFlowHandler)
	api.GET("/cash-flows", listCashFlowsHandler)
	api.GET("/cash-flows/labels", cashFlowLabelsHandler)
	api.GET("/cash-flows/stats", cashFlowStatsHandler)
	api.GET("/cash-flows/:id", getCashFlowHandler)
	api.PUT("/cash-flows/:id", updateCashFlowHandler)
	api.DELETE("/cash-flows/:id", deleteCashFlowHandler)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, success("ok", nil))
}

func notFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, fail("endpoint not found"))
}

func registerHandler(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fail("invalid registration data"))
		return
	}

	if existing := getUserByEmail(req.Email); existing != nil {
		c.JSON(http.StatusBadRequest, fail("a user is already registered with this email"))
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serverError("failed to hash password"))
		return
	}

	user := models.User{Name: req.Name, Email: req.Email, Password: hash}
	if err := db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, serverError("failed to register user"))
		return
	}

	c.JSON(http.StatusOK, success("registration successful", gin.H{"id": user.ID}))
}

func loginHandler(codec *token.Codec, tokens TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, fail("invalid login data"))
			return
		}

		user := getUserByEmail(req.Email)
		if user == nil || !CheckPassword(req.Password, user.Password) {
			c.JSON(http.StatusBadRequest, fail("wrong email or password"))
			return
		}

		tok, err := codec.Issue(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, serverError("failed to create authentication token"))
			return
		}

		// Safety net: a freshly signed token should never already be in
		// the store; if it somehow is, clear the user's rows first.
		if tokens.Find(user.ID, tok) != nil {
			_ = tokens.RevokeAll(user.ID)
		}
		if tokens.Create(user.ID, tok) == nil {
			c.JSON(http.StatusInternalServerError, serverError("failed to create authentication token"))
			return
		}

		c.JSON(http.StatusOK, success("login successful", gin.H{"authToken": tok}))
	}
}

func meHandler(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fail("not authenticated"))
		return
	}
	c.JSON(http.StatusOK, success("successfully retrieved user info", gin.H{"user": user}))
}

func updateUserHandler(c *gin.Context) {
	user, ok := authUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, fail("not authenticated"))
		return
	}

	var req struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, fail("invalid user data"))
		return
	}

	res := db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]any{"name": req.Name, "email": req.Email})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, serverError("failed to update user"))
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, fail("user not found"))
		return
	}

	c.JSON(http.StatusOK, success("user updated successfully", nil))
}

func updatePasswordHandler(tokens TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, fail("not authenticated"))
			return
		}

		var req struct {
			Password    string `json:"password" binding:"required"`
			NewPassword string `json:"newPassword" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, fail("old and new password are required"))
			return
		}

		if !CheckPassword(req.Password, user.Password) {
			c.JSON(http.StatusBadRequest, fail("password confirmation does not match"))
			return
		}

		hash, err := HashPassword(req.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, serverError("failed to hash password"))
			return
		}

		res := db.Model(&models.User{}).Where("id = ?", user.ID).Update("password", hash)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, serverError("failed to update password"))
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, fail("user not found"))
			return
		}

		// Force re-authentication everywhere.
		_ = tokens.RevokeAll(user.ID)

		c.JSON(http.StatusOK, success("password updated successfully", nil))
	}
}

func logoutHandler(tokens TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, fail("not authenticated"))
			return
		}
		if err := tokens.RevokeAll(user.ID); err != nil {
			c.JSON(http.StatusInternalServerError, serverError("failed to revoke tokens"))
			return
		}
		c.JSON(http.StatusOK, success("logout successful", nil))
	}
}
