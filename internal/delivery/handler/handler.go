package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"user-service/internal/application/command"
	"user-service/internal/application/interfaces"
	"user-service/internal/domain/entities"
)

type Handler struct {
	userService interfaces.UserService
}

func NewHandler(userService interfaces.UserService) *Handler {
	return &Handler{userService: userService}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) Register(c echo.Context) error {
	var registerCommand command.RegisterUserCommand
	if err := c.Bind(&registerCommand); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	result, err := h.userService.RegisterUser(&registerCommand)
	if err != nil {
		return h.clientOrServerError(c, err, "Registration failed")
	}

	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) GetUserByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid user id"})
	}

	result, err := h.userService.GetUserByID(id)
	if err != nil {
		return h.serverError(c, err)
	}
	if result == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) GetUserByUsername(c echo.Context) error {
	result, err := h.userService.GetUserByUsername(c.Param("username"))
	if err != nil {
		return h.serverError(c, err)
	}
	if result == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid user id"})
	}

	var updateCommand command.UpdateUserCommand
	if err := c.Bind(&updateCommand); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	result, err := h.userService.UpdateUser(id, &updateCommand)
	if err != nil {
		return h.clientOrServerError(c, err, "Update failed")
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid user id"})
	}

	if err := h.userService.DeleteUser(id); err != nil {
		return h.clientOrServerError(c, err, "Delete failed")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func (h *Handler) SearchUsers(c echo.Context) error {
	searchQuery := c.QueryParam("query")
	if searchQuery == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "query parameter is required"})
	}

	result, err := h.userService.SearchUsers(searchQuery)
	if err != nil {
		return h.serverError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) GetAllActiveUsers(c echo.Context) error {
	result, err := h.userService.GetAllActiveUsers()
	if err != nil {
		return h.serverError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) CountActiveUsers(c echo.Context) error {
	count, err := h.userService.CountActiveUsers()
	if err != nil {
		return h.serverError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// CheckUsernameAvailability returns true when the username is free.
func (h *Handler) CheckUsernameAvailability(c echo.Context) error {
	exists, err := h.userService.ExistsByUsername(c.Param("username"))
	if err != nil {
		return h.serverError(c, err)
	}

	return c.JSON(http.StatusOK, !exists)
}

func (h *Handler) CheckEmailAvailability(c echo.Context) error {
	exists, err := h.userService.ExistsByEmail(c.Param("email"))
	if err != nil {
		return h.serverError(c, err)
	}

	return c.JSON(http.StatusOK, !exists)
}

func (h *Handler) IncrementFollowers(c echo.Context) error {
	return h.adjustCounter(c, h.userService.IncrementFollowerCount)
}

func (h *Handler) DecrementFollowers(c echo.Context) error {
	return h.adjustCounter(c, h.userService.DecrementFollowerCount)
}

func (h *Handler) IncrementFollowing(c echo.Context) error {
	return h.adjustCounter(c, h.userService.IncrementFollowingCount)
}

func (h *Handler) DecrementFollowing(c echo.Context) error {
	return h.adjustCounter(c, h.userService.DecrementFollowingCount)
}

func (h *Handler) IncrementTweets(c echo.Context) error {
	return h.adjustCounter(c, h.userService.IncrementTweetCount)
}

func (h *Handler) adjustCounter(c echo.Context, adjust func(int64) error) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid user id"})
	}

	if err := adjust(id); err != nil {
		return h.clientOrServerError(c, err, "Counter update failed")
	}

	return c.NoContent(http.StatusOK)
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// clientOrServerError collapses service errors for the API boundary:
// duplicates, validation failures and missing ids are client errors with a
// message; everything else is a generic server error with no internals.
func (h *Handler) clientOrServerError(c echo.Context, err error, prefix string) error {
	var dup *entities.DuplicateIdentifierError
	var invalid *entities.ValidationError

	switch {
	case errors.As(err, &dup), errors.As(err, &invalid), errors.Is(err, entities.ErrUserNotFound):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: prefix + ": " + err.Error()})
	default:
		return h.serverError(c, err)
	}
}

func (h *Handler) serverError(c echo.Context, err error) error {
	log.Printf("Request %s %s failed: %v", c.Request().Method, c.Request().URL.Path, err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
