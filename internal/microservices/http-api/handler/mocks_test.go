package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bloghub/internal/microservices/http-api/dto"
	"bloghub/internal/microservices/http-api/models"
	"bloghub/internal/microservices/http-api/response"
	"bloghub/internal/microservices/http-api/service"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) TokenTTL() time.Duration {
	return 30 * time.Minute
}

// MockCommentService mocks the CommentService interface
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) CreateComment(ctx context.Context, userID *int64, req *dto.CreateCommentDTO) (*dto.CommentNode, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentNode), args.Error(1)
}

func (m *MockCommentService) UpdateComment(ctx context.Context, commentID, userID int64, content string) (*dto.CommentNode, error) {
	args := m.Called(ctx, commentID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentNode), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, commentID, userID int64) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}

func (m *MockCommentService) GetPostComments(ctx context.Context, postID int64) (*dto.CommentTreeResponse, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentTreeResponse), args.Error(1)
}

func (m *MockCommentService) GetUserComments(ctx context.Context, userID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedCommentResponse), args.Error(1)
}

// MockPostService mocks the PostService interface
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) ListPosts(ctx context.Context, query *dto.PostListQuery) (*dto.PostListResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostListResponse), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, id int64) (*dto.PostResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostResponse), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID int64, req *dto.PostRequest) (*dto.PostResponse, error) {
	args := m.Called(ctx, authorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostResponse), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, id, userID int64, req *dto.PostRequest) (*dto.PostResponse, error) {
	args := m.Called(ctx, id, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostResponse), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockPostService) GetArchive(ctx context.Context) (*dto.ArchiveResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ArchiveResponse), args.Error(1)
}

// MockInteractionService mocks the InteractionService interface
type MockInteractionService struct {
	mock.Mock
}

func (m *MockInteractionService) View(ctx context.Context, postID int64) error {
	return m.Called(ctx, postID).Error(0)
}

func (m *MockInteractionService) Like(ctx context.Context, postID int64) error {
	return m.Called(ctx, postID).Error(0)
}

// MockTaxonomyService mocks the TaxonomyService interface
type MockTaxonomyService struct {
	mock.Mock
}

func (m *MockTaxonomyService) ListCategories(ctx context.Context) (*dto.CategoryListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CategoryListResponse), args.Error(1)
}

func (m *MockTaxonomyService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockTaxonomyService) ListTags(ctx context.Context) (*dto.TagListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TagListResponse), args.Error(1)
}

func (m *MockTaxonomyService) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tag), args.Error(1)
}

// MockSiteService mocks the SiteService interface
type MockSiteService struct {
	mock.Mock
}

func (m *MockSiteService) GetSiteInfo(ctx context.Context) (*dto.SiteInfoResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SiteInfoResponse), args.Error(1)
}

func (m *MockSiteService) ListMenus(ctx context.Context) (*dto.MenuListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MenuListResponse), args.Error(1)
}

var (
	_ service.AuthService        = (*MockAuthService)(nil)
	_ service.CommentService     = (*MockCommentService)(nil)
	_ service.PostService        = (*MockPostService)(nil)
	_ service.InteractionService = (*MockInteractionService)(nil)
	_ service.TaxonomyService    = (*MockTaxonomyService)(nil)
	_ service.SiteService        = (*MockSiteService)(nil)
)

type envelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
	Msg  string          `json:"msg"`
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	response.RegisterValidatorTagNames()
	return gin.New()
}

func perform(t *testing.T, r http.Handler, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
