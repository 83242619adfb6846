package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/edusphere/internal/config"
	"anoa.com/edusphere/internal/entity"
	classRepo "anoa.com/edusphere/internal/modules/class/repository"
	"anoa.com/edusphere/internal/store"
	"anoa.com/edusphere/internal/store/memory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	repos  store.Repositories
}

func newTestServer(t *testing.T, repos store.Repositories) *testServer {
	t.Helper()
	cfg := &config.Config{
		AppEnv:         "test",
		AllowedOrigins: []string{"http://localhost:5173"},
		JWTSecret:      "test-secret",
		JWTTTL:         time.Hour,
		RequestTimeout: 5 * time.Second,
	}
	return &testServer{
		t:      t,
		router: NewRouter(Deps{Config: cfg, Repositories: repos}),
		repos:  repos,
	}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) token(email string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/auth-token", "", gin.H{"email": email})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(s.t, res.Token)
	return res.Token
}

func (s *testServer) seedUser(email, role string) *entity.User {
	s.t.Helper()
	u := &entity.User{Email: email, Name: email, Role: role}
	require.NoError(s.t, s.repos.Users.Create(context.Background(), u))
	return u
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type classList struct {
	Data  []entity.Class `json:"data"`
	Total int64          `json:"total"`
}

func TestLiveness(t *testing.T) {
	s := newTestServer(t, memory.New())
	w := s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "EduSphere server is running", w.Body.String())
}

func TestMissingTokenIsRejectedWithoutMutation(t *testing.T) {
	s := newTestServer(t, memory.New())

	w := s.do(http.MethodPost, "/teach-requests", "", gin.H{
		"name": "A", "title": "Go", "category": "dev", "experience": "beginner",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	reqs, err := s.repos.TeachRequests.FindAll(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestNonAdminCannotPromote(t *testing.T) {
	s := newTestServer(t, memory.New())
	target := s.seedUser("b@x.com", "")
	s.seedUser("t@x.com", entity.RoleTeacher)

	w := s.do(http.MethodPatch, "/users/role/"+target.ID.String(), s.token("t@x.com"), gin.H{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	got, err := s.repos.Users.FindByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Role)
}

func TestRegisterProbeAndPromote(t *testing.T) {
	s := newTestServer(t, memory.New())
	s.seedUser("root@x.com", entity.RoleAdmin)

	w := s.do(http.MethodPost, "/users", "", gin.H{"email": "a@x.com", "name": "A"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registered := decode[struct {
		User entity.User `json:"user"`
	}](t, w)

	w = s.do(http.MethodPost, "/users", "", gin.H{"email": "a@x.com", "name": "A"})
	assert.Equal(t, http.StatusOK, w.Code)

	userToken := s.token("a@x.com")
	w = s.do(http.MethodGet, "/users/role/a@x.com", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, decode[struct {
		Admin bool `json:"admin"`
	}](t, w).Admin)

	w = s.do(http.MethodPatch, "/users/role/"+registered.User.ID.String(), s.token("root@x.com"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/users/role/a@x.com", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[struct {
		Admin bool `json:"admin"`
	}](t, w).Admin)

	// The promotion applies to the existing token.
	w = s.do(http.MethodGet, "/users", userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleProbeOfAnotherUserIsForbidden(t *testing.T) {
	s := newTestServer(t, memory.New())
	s.seedUser("a@x.com", "")
	s.seedUser("b@x.com", "")

	w := s.do(http.MethodGet, "/users/role/b@x.com", s.token("a@x.com"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestClassLifecycleAndHighlights(t *testing.T) {
	s := newTestServer(t, memory.New())
	s.seedUser("t@x.com", entity.RoleTeacher)
	s.seedUser("root@x.com", entity.RoleAdmin)
	teacher := s.token("t@x.com")
	admin := s.token("root@x.com")

	w := s.do(http.MethodPost, "/classes", teacher, gin.H{"title": "Go 101", "price": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[entity.Class](t, w)
	assert.Equal(t, entity.ClassStatusPending, first.Status)

	w = s.do(http.MethodGet, "/public-classes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[classList](t, w).Data)

	w = s.do(http.MethodPatch, "/classes/"+first.ID.String()+"/status", teacher, gin.H{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPatch, "/classes/"+first.ID.String()+"/status", admin, gin.H{"status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/public-classes", "", nil)
	list := decode[classList](t, w)
	require.Len(t, list.Data, 1)
	assert.Equal(t, first.ID, list.Data[0].ID)

	ctx := context.Background()
	require.NoError(t, s.repos.Classes.Delete(ctx, first.ID))

	for i := 0; i < 6; i++ {
		w := s.do(http.MethodPost, "/classes", teacher, gin.H{"title": fmt.Sprintf("class %d", i), "price": 5})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		class := decode[entity.Class](t, w)

		w = s.do(http.MethodPatch, "/classes/"+class.ID.String()+"/status", admin, gin.H{"status": "accepted"})
		require.Equal(t, http.StatusOK, w.Code)

		for j := 0; j < i; j++ {
			_, err := s.repos.Classes.IncrementCounter(ctx, class.ID, entity.CounterEnroll)
			require.NoError(t, err)
		}
	}

	w = s.do(http.MethodGet, "/public-classes/highlighted", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	highlighted := decode[classList](t, w)
	require.Len(t, highlighted.Data, 6)

	counts := make([]int64, 0, len(highlighted.Data))
	for _, c := range highlighted.Data {
		counts = append(counts, c.EnrollCount)
	}
	assert.Equal(t, []int64{5, 4, 3, 2, 1, 0}, counts)

	w = s.do(http.MethodGet, "/public-classes/search?q=class%203", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	found := decode[classList](t, w)
	require.Len(t, found.Data, 1)
	assert.Equal(t, "class 3", found.Data[0].Title)
}

func TestStudentCannotCreateClass(t *testing.T) {
	s := newTestServer(t, memory.New())
	s.seedUser("s@x.com", "")

	w := s.do(http.MethodPost, "/classes", s.token("s@x.com"), gin.H{"title": "Go", "price": 10})
	assert.Equal(t, http.StatusForbidden, w.Code)

	classes, err := s.repos.Classes.FindAll(context.Background(), classRepo.ClassFilter{})
	require.NoError(t, err)
	assert.Empty(t, classes)
}

func TestTeachRequestRejectTwice(t *testing.T) {
	s := newTestServer(t, memory.New())
	s.seedUser("root@x.com", entity.RoleAdmin)
	admin := s.token("root@x.com")

	w := s.do(http.MethodPost, "/teach-requests", s.token("a@x.com"), gin.H{
		"name": "A", "title": "Go", "category": "dev", "experience": "beginner",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	req := decode[entity.TeachRequest](t, w)

	path := "/teach-requests/" + req.ID.String() + "/resolve"
	w = s.do(http.MethodPatch, path, admin, gin.H{"action": "reject"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPatch, path, admin, gin.H{"action": "reject"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "role is already rejected", decode[struct {
		Message string `json:"message"`
	}](t, w).Message)

	w = s.do(http.MethodPatch, path, admin, gin.H{"action": "accept"})
	assert.Equal(t, http.StatusConflict, w.Code)

	user, err := s.repos.Users.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleRejected, user.Role)
}

func TestPaymentWithoutProcessorIsUnavailable(t *testing.T) {
	s := newTestServer(t, memory.New())
	w := s.do(http.MethodPost, "/payments/intent", s.token("a@x.com"), gin.H{"price": 10})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestEnrollAndSubmit(t *testing.T) {
	s := newTestServer(t, memory.New())
	s.seedUser("t@x.com", entity.RoleTeacher)
	teacher := s.token("t@x.com")
	student := s.token("s@x.com")

	w := s.do(http.MethodPost, "/classes", teacher, gin.H{"title": "Go", "price": 10})
	require.Equal(t, http.StatusCreated, w.Code)
	class := decode[entity.Class](t, w)

	w = s.do(http.MethodPost, "/assignments", teacher, gin.H{"class_id": class.ID, "title": "Week 1", "description": "read"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assignment := decode[struct {
		Assignment entity.Assignment `json:"assignment"`
	}](t, w).Assignment

	submit := gin.H{"class_id": class.ID, "assignment_id": assignment.ID, "content": "done"}
	w = s.do(http.MethodPost, "/submissions", student, submit)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/payments", student, gin.H{"class_id": class.ID, "amount": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, int64(1), decode[struct {
		EnrollCount int64 `json:"enroll_count"`
	}](t, w).EnrollCount)

	w = s.do(http.MethodPost, "/payments", student, gin.H{"class_id": class.ID, "amount": 10})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/submissions", student, submit)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	got, err := s.repos.Classes.FindByID(context.Background(), class.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.EnrollCount)
	assert.Equal(t, int64(1), got.AssignmentCount)
	assert.Equal(t, int64(1), got.SubmissionCount)
}

type failingCounter struct {
	classRepo.ClassRepository
}

func (failingCounter) IncrementCounter(context.Context, uuid.UUID, string) (int64, error) {
	return 0, errors.New("connection reset")
}

func TestCounterFailureReportsInsertedRecord(t *testing.T) {
	repos := memory.New()
	repos.Classes = failingCounter{repos.Classes}
	s := newTestServer(t, repos)

	class := &entity.Class{Title: "Go", OwnerEmail: "t@x.com", Price: 10, Status: entity.ClassStatusAccepted}
	require.NoError(t, repos.Classes.Create(context.Background(), class))

	w := s.do(http.MethodPost, "/payments", s.token("s@x.com"), gin.H{"class_id": class.ID, "amount": 10})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decode[map[string]string](t, w)
	assert.Equal(t, "counter_update_failed", body["code"])

	payment, err := repos.Payments.FindByPayerAndClass(context.Background(), "s@x.com", class.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID.String(), body["inserted_id"])
}
