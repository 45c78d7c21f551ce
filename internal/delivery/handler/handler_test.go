package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-service/internal/application/command"
	"user-service/internal/application/common"
	"user-service/internal/application/interfaces"
	"user-service/internal/application/query"
	"user-service/internal/config"
	"user-service/internal/domain/entities"
)

// stubUserService returns canned results so the tests exercise only the
// HTTP translation layer.
type stubUserService struct {
	users map[int64]*common.UserResult
}

var _ interfaces.UserService = (*stubUserService)(nil)

func newStubUserService() *stubUserService {
	return &stubUserService{
		users: map[int64]*common.UserResult{
			1: {Id: 1, Username: "alice", Email: "alice@x.com", IsActive: true},
		},
	}
}

func (s *stubUserService) RegisterUser(cmd *command.RegisterUserCommand) (*command.RegisterUserCommandResult, error) {
	if cmd.Username == "alice" {
		return nil, &entities.DuplicateIdentifierError{Field: "username"}
	}
	if len(cmd.Password) < 6 {
		return nil, &entities.ValidationError{Message: "password must be at least 6 characters"}
	}
	return &command.RegisterUserCommandResult{
		Result: &common.UserResult{Id: 2, Username: cmd.Username, Email: cmd.Email, IsActive: true},
	}, nil
}

func (s *stubUserService) GetUserByID(id int64) (*query.UserQueryResult, error) {
	if user, ok := s.users[id]; ok {
		return &query.UserQueryResult{Result: user}, nil
	}
	return nil, nil
}

func (s *stubUserService) GetUserByUsername(username string) (*query.UserQueryResult, error) {
	for _, user := range s.users {
		if user.Username == username {
			return &query.UserQueryResult{Result: user}, nil
		}
	}
	return nil, nil
}

func (s *stubUserService) UpdateUser(id int64, _ *command.UpdateUserCommand) (*command.UpdateUserCommandResult, error) {
	if user, ok := s.users[id]; ok {
		return &command.UpdateUserCommandResult{Result: user}, nil
	}
	return nil, entities.ErrUserNotFound
}

func (s *stubUserService) DeleteUser(id int64) error {
	if _, ok := s.users[id]; !ok {
		return entities.ErrUserNotFound
	}
	return nil
}

func (s *stubUserService) SearchUsers(string) (*query.UserQueryListResult, error) {
	return &query.UserQueryListResult{Result: []*common.UserResult{}}, nil
}

func (s *stubUserService) GetAllActiveUsers() (*query.UserQueryListResult, error) {
	return &query.UserQueryListResult{Result: []*common.UserResult{s.users[1]}}, nil
}

func (s *stubUserService) CountActiveUsers() (int64, error) {
	return int64(len(s.users)), nil
}

func (s *stubUserService) ExistsByUsername(username string) (bool, error) {
	return username == "alice", nil
}

func (s *stubUserService) ExistsByEmail(email string) (bool, error) {
	return email == "alice@x.com", nil
}

func (s *stubUserService) IncrementFollowerCount(id int64) error  { return s.counter(id) }
func (s *stubUserService) DecrementFollowerCount(id int64) error  { return s.counter(id) }
func (s *stubUserService) IncrementFollowingCount(id int64) error { return s.counter(id) }
func (s *stubUserService) DecrementFollowingCount(id int64) error { return s.counter(id) }
func (s *stubUserService) IncrementTweetCount(id int64) error     { return s.counter(id) }

func (s *stubUserService) counter(id int64) error {
	if _, ok := s.users[id]; !ok {
		return entities.ErrUserNotFound
	}
	return nil
}

func newTestServer() *echo.Echo {
	e := echo.New()
	cfg := &config.Config{
		GlobalRateLimit:    1000,
		GlobalRateBurst:    1000,
		RegisterRateWindow: 0,
		RegisterRateLimit:  1000,
	}
	RegisterRoutes(e, NewHandler(newStubUserService()), cfg)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterCreated(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPost, "/api/v1/users/register",
		`{"username":"bob","email":"bob@x.com","password":"secret123"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"bob"`)
}

func TestRegisterDuplicateIsClientError(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPost, "/api/v1/users/register",
		`{"username":"alice","email":"alice@x.com","password":"secret123"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "username already exists")
}

func TestRegisterValidationIsClientError(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPost, "/api/v1/users/register",
		`{"username":"bob","email":"bob@x.com","password":"short"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserByID(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodGet, "/api/v1/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)

	rec = do(e, http.MethodGet, "/api/v1/users/404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/users/not-a-number", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserByUsername(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodGet, "/api/v1/users/username/alice", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/users/username/nobody", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUser(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodPut, "/api/v1/users/1", `{"bio":"new"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPut, "/api/v1/users/404", `{"bio":"new"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "mutation on a missing id is a client error")
}

func TestDeleteUser(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodDelete, "/api/v1/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodDelete, "/api/v1/users/404", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchRequiresQuery(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodGet, "/api/v1/users/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/users/search?query=ali", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestActiveUsersAndCount(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodGet, "/api/v1/users/active", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)

	rec = do(e, http.MethodGet, "/api/v1/users/count", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)
}

func TestAvailabilityReturnsBareBoolean(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodGet, "/api/v1/users/check-username/alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "false", strings.TrimSpace(rec.Body.String()), "taken username is not available")

	rec = do(e, http.MethodGet, "/api/v1/users/check-username/nobody", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", strings.TrimSpace(rec.Body.String()))

	rec = do(e, http.MethodGet, "/api/v1/users/check-email/free@x.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", strings.TrimSpace(rec.Body.String()))
}

func TestCounterEndpoints(t *testing.T) {
	e := newTestServer()

	for _, path := range []string{
		"/api/v1/users/1/increment-followers",
		"/api/v1/users/1/decrement-followers",
		"/api/v1/users/1/increment-following",
		"/api/v1/users/1/decrement-following",
		"/api/v1/users/1/increment-tweets",
	} {
		rec := do(e, http.MethodPost, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := do(e, http.MethodPost, "/api/v1/users/404/increment-followers", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestIDIsAssigned(t *testing.T) {
	e := newTestServer()

	rec := do(e, http.MethodGet, "/api/v1/users/1", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
