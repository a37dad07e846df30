package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/user-service/internal/api/http"
	"github.com/spec-kit/user-service/internal/api/http/handlers"
	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/config"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/observability"
	"github.com/spec-kit/user-service/internal/service"
	"github.com/spec-kit/user-service/pkg/testutil"
)

type RouterSuite struct {
	suite.Suite
	app  *fiber.App
	repo *testutil.MemoryUserRepository
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.repo = testutil.NewMemoryUserRepository()

	authCfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}
	dispatcher := events.NewInMemoryDispatcher()
	authService := service.NewAuthService(authCfg, s.repo, dispatcher)
	userService := service.NewUserService(s.repo, dispatcher)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), s.repo)

	s.app = fiber.New()
	httptransport.RegisterMiddlewares(s.app, zap.NewNop(), observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(s.app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("user-service", "test", nil, nil),
		Users:          handlers.NewUsersHandler(authService, userService),
		AuthMiddleware: authMiddleware,
	})
}

func (s *RouterSuite) request(method, path, body, token string) (*http.Response, map[string]any) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	s.Require().NoError(err)

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	parsed := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(strings.TrimSpace(string(raw)), "{") {
		s.Require().NoError(json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func (s *RouterSuite) register(name, email, password string) (string, string) {
	resp, body := s.request(http.MethodPost, "/users",
		`{"name":"`+name+`","email":"`+email+`","password":"`+password+`"}`, "")
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	return user["uuid"].(string), body["token"].(string)
}

func (s *RouterSuite) registerAdmin(email, password string) string {
	uuid, token := s.register("Test Admin", email, password)
	s.Require().NoError(s.repo.SetRole(context.Background(), uuid, domain.RoleAdmin))
	return token
}

func (s *RouterSuite) TestCreateUserSuccess() {
	resp, body := s.request(http.MethodPost, "/users",
		`{"name":"A","email":"a@x.com","password":"password1"}`, "")

	s.Equal(http.StatusCreated, resp.StatusCode)
	s.Equal("success", body["status"])
	s.NotEmpty(body["token"])

	user := body["data"].(map[string]any)["user"].(map[string]any)
	s.NotEmpty(user["uuid"])
	s.Equal("A", user["name"])
	s.Equal("a@x.com", user["email"])
	s.NotContains(user, "password")
}

func (s *RouterSuite) TestCreateUserValidation() {
	resp, body := s.request(http.MethodPost, "/users",
		`{"name":"A","email":"a@x.com","password":"short"}`, "")

	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("fail", body["status"])
	s.Equal("Dados de entrada inválidos.", body["message"])
	s.NotEmpty(body["data"])
}

func (s *RouterSuite) TestCreateUserInvalidEmail() {
	resp, body := s.request(http.MethodPost, "/users",
		`{"name":"A","email":"not-an-email","password":"password1"}`, "")

	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("fail", body["status"])
}

func (s *RouterSuite) TestCreateUserDuplicateEmail() {
	s.register("A", "a@x.com", "password1")

	resp, body := s.request(http.MethodPost, "/users",
		`{"name":"B","email":"a@x.com","password":"password2"}`, "")

	s.Equal(http.StatusConflict, resp.StatusCode)
	s.Equal("fail", body["status"])

	users, err := s.repo.ListActive(context.Background())
	s.Require().NoError(err)
	s.Len(users, 1)
}

func (s *RouterSuite) TestCreateUserDuplicateEmailOfDeletedRow() {
	adminToken := s.registerAdmin("admin@x.com", "password1")
	uuid, _ := s.register("A", "a@x.com", "password1")

	resp, _ := s.request(http.MethodDelete, "/users/"+uuid, "", adminToken)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp, _ = s.request(http.MethodPost, "/users",
		`{"name":"B","email":"a@x.com","password":"password2"}`, "")
	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *RouterSuite) TestLoginRoundTrip() {
	uuid, _ := s.register("A", "a@x.com", "password1")

	resp, body := s.request(http.MethodPost, "/users/login",
		`{"email":"a@x.com","password":"password1"}`, "")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("success", body["status"])
	s.NotEmpty(body["token"])

	user := body["data"].(map[string]any)["user"].(map[string]any)
	s.Equal(uuid, user["uuid"])
	s.NotContains(user, "password")
}

func (s *RouterSuite) TestLoginWrongPassword() {
	s.register("A", "a@x.com", "password1")

	resp, body := s.request(http.MethodPost, "/users/login",
		`{"email":"a@x.com","password":"wrong-password"}`, "")

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("fail", body["status"])
	s.Equal("Email ou senha incorretos.", body["message"])
}

func (s *RouterSuite) TestLoginMissingFields() {
	resp, body := s.request(http.MethodPost, "/users/login", `{"email":"a@x.com"}`, "")

	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("Por favor, forneça email e senha.", body["message"])
}

func (s *RouterSuite) TestListRequiresToken() {
	resp, _ := s.request(http.MethodGet, "/users", "", "")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *RouterSuite) TestListForbiddenForNonAdmin() {
	_, token := s.register("A", "a@x.com", "password1")

	resp, body := s.request(http.MethodGet, "/users", "", token)
	s.Equal(http.StatusForbidden, resp.StatusCode)
	s.Equal("Você não tem permissão para realizar esta ação.", body["message"])
}

func (s *RouterSuite) TestListReturnsActiveUsersForAdmin() {
	adminToken := s.registerAdmin("admin@x.com", "password1")
	s.register("A", "a@x.com", "password1")

	resp, body := s.request(http.MethodGet, "/users", "", adminToken)
	s.Equal(http.StatusOK, resp.StatusCode)

	users := body["data"].(map[string]any)["users"].([]any)
	s.Len(users, 2)
	for _, item := range users {
		s.NotContains(item.(map[string]any), "password")
	}
}

func (s *RouterSuite) TestGetByUUID() {
	uuid, token := s.register("A", "a@x.com", "password1")

	resp, body := s.request(http.MethodGet, "/users/"+uuid, "", token)
	s.Equal(http.StatusOK, resp.StatusCode)

	user := body["data"].(map[string]any)["user"].(map[string]any)
	s.Equal(uuid, user["uuid"])
}

func (s *RouterSuite) TestGetByUUIDNotFound() {
	_, token := s.register("A", "a@x.com", "password1")

	resp, body := s.request(http.MethodGet, "/users/3e9b4a66-0000-0000-0000-000000000000", "", token)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("Nenhum usuário encontrado com este UUID.", body["message"])
}

func (s *RouterSuite) TestUpdateWithoutFields() {
	uuid, token := s.register("A", "a@x.com", "password1")

	resp, body := s.request(http.MethodPut, "/users/"+uuid, `{}`, token)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("Forneça pelo menos um campo para atualizar.", body["message"])

	user, err := s.repo.GetByUUID(context.Background(), uuid)
	s.Require().NoError(err)
	s.Equal("A", user.Name)
	s.Equal("a@x.com", user.Email)
}

func (s *RouterSuite) TestUpdateName() {
	uuid, token := s.register("Abc", "a@x.com", "password1")

	resp, body := s.request(http.MethodPut, "/users/"+uuid, `{"name":"Renamed"}`, token)
	s.Equal(http.StatusOK, resp.StatusCode)

	user := body["data"].(map[string]any)["user"].(map[string]any)
	s.Equal("Renamed", user["name"])
	s.Equal("a@x.com", user["email"])
}

func (s *RouterSuite) TestUpdateUnknownUUID() {
	_, token := s.register("A", "a@x.com", "password1")

	resp, _ := s.request(http.MethodPut, "/users/3e9b4a66-0000-0000-0000-000000000000",
		`{"name":"Renamed"}`, token)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *RouterSuite) TestDeleteForbiddenForNonAdmin() {
	uuid, token := s.register("A", "a@x.com", "password1")

	resp, _ := s.request(http.MethodDelete, "/users/"+uuid, "", token)
	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *RouterSuite) TestSoftDeleteAndRestoreFlow() {
	adminToken := s.registerAdmin("admin@x.com", "password1")
	uuid, _ := s.register("A", "a@x.com", "password1")

	resp, body := s.request(http.MethodDelete, "/users/"+uuid, "", adminToken)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Usuário deletado com sucesso.", body["message"])

	resp, _ = s.request(http.MethodGet, "/users/"+uuid, "", adminToken)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp, _ = s.request(http.MethodDelete, "/users/"+uuid, "", adminToken)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp, body = s.request(http.MethodPost, "/users/"+uuid+"/restore", "", adminToken)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Usuário restaurado com sucesso.", body["message"])

	resp, body = s.request(http.MethodGet, "/users/"+uuid, "", adminToken)
	s.Equal(http.StatusOK, resp.StatusCode)
	user := body["data"].(map[string]any)["user"].(map[string]any)
	s.Equal("A", user["name"])
	s.Equal("a@x.com", user["email"])
}

func (s *RouterSuite) TestRestoreMissingUUID() {
	adminToken := s.registerAdmin("admin@x.com", "password1")

	resp, body := s.request(http.MethodPost,
		"/users/3e9b4a66-0000-0000-0000-000000000000/restore", "", adminToken)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("Nenhum usuário encontrado com este UUID para restaurar.", body["message"])
}

func (s *RouterSuite) TestDeletedUserTokenRejected() {
	adminToken := s.registerAdmin("admin@x.com", "password1")
	uuid, token := s.register("A", "a@x.com", "password1")

	resp, _ := s.request(http.MethodDelete, "/users/"+uuid, "", adminToken)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp, body := s.request(http.MethodGet, "/users/"+uuid, "", token)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("O usuário pertencente a este token não existe mais.", body["message"])
}

func (s *RouterSuite) TestUnmatchedRoute() {
	resp, body := s.request(http.MethodGet, "/nope", "", "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("fail", body["status"])
	s.Contains(body["message"], "/nope")
}

func (s *RouterSuite) TestRootRoute() {
	resp, _ := s.request(http.MethodGet, "/", "", "")
	s.Equal(http.StatusOK, resp.StatusCode)
}
