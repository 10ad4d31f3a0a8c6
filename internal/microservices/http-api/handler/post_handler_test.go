package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bloghub/internal/apperror"
	"bloghub/internal/microservices/http-api/dto"
	"bloghub/internal/microservices/http-api/middleware"
	"bloghub/internal/microservices/http-api/service"
)

func postRouter(posts *MockPostService, interactions *MockInteractionService, auth *MockAuthService) http.Handler {
	r := setupRouter()
	NewPostHandler(posts, interactions).RegisterRoutes(r.Group("/api"), middleware.NewGate(auth))
	return r
}

func TestListPosts_QueryBinding(t *testing.T) {
	posts := new(MockPostService)
	posts.On("ListPosts", mock.Anything, mock.MatchedBy(func(q *dto.PostListQuery) bool {
		return q.Page == 1 && q.Size == 10 && q.Tag == "Go" && q.Date == "2024-03-01"
	})).Return(&dto.PostListResponse{Page: 1, Size: 10, Posts: []*dto.PostResponse{}}, nil)
	r := postRouter(posts, new(MockInteractionService), signedIn(1))

	w, env := perform(t, r, http.MethodGet, "/api/posts?tag=Go&date=2024-03-01", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"page":1,"size":10,"total":0,"posts":[]}`, string(env.Data))

	w, env = perform(t, r, http.MethodGet, "/api/posts?date=03/01/2024", nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, string(env.Data), "date")

	w, _ = perform(t, r, http.MethodGet, "/api/posts?page=0", nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetPost(t *testing.T) {
	posts := new(MockPostService)
	posts.On("GetPost", mock.Anything, int64(3)).Return(&dto.PostResponse{ID: 3, Title: "Hello", Tags: []string{"Go"}}, nil)
	posts.On("GetPost", mock.Anything, int64(4)).Return(nil, apperror.NewNotFound(service.MsgPostNotFound, nil))
	r := postRouter(posts, new(MockInteractionService), signedIn(1))

	w, env := perform(t, r, http.MethodGet, "/api/posts/3", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data dto.PostResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Hello", data.Title)

	w, env = perform(t, r, http.MethodGet, "/api/posts/4", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, service.MsgPostNotFound, env.Msg)
}

func TestCreatePost_RequiresIdentity(t *testing.T) {
	posts := new(MockPostService)
	posts.On("CreatePost", mock.Anything, int64(9), mock.AnythingOfType("*dto.PostRequest")).
		Return(&dto.PostResponse{ID: 1, Title: "T"}, nil)
	r := postRouter(posts, new(MockInteractionService), signedIn(9))
	body := map[string]any{"title": "T", "content": "C"}

	w, env := perform(t, r, http.MethodPost, "/api/posts", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.MsgMissingHeader, env.Msg)
	posts.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything, mock.Anything)

	w, _ = perform(t, r, http.MethodPost, "/api/posts", body, bearer("good"))
	assert.Equal(t, http.StatusCreated, w.Code)
	posts.AssertExpectations(t)
}

func TestUpdateAndDeletePost(t *testing.T) {
	posts := new(MockPostService)
	posts.On("UpdatePost", mock.Anything, int64(2), int64(9), mock.AnythingOfType("*dto.PostRequest")).
		Return(nil, apperror.NewForbidden(service.MsgNotAuthorized))
	posts.On("DeletePost", mock.Anything, int64(2), int64(9)).Return(nil)
	r := postRouter(posts, new(MockInteractionService), signedIn(9))

	w, _ := perform(t, r, http.MethodPut, "/api/posts/2", map[string]any{"title": "T", "content": "C"}, bearer("good"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := perform(t, r, http.MethodDelete, "/api/posts/2", nil, bearer("good"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "post deleted", env.Msg)
}

func TestViewAndLike(t *testing.T) {
	interactions := new(MockInteractionService)
	interactions.On("View", mock.Anything, int64(5)).Return(nil)
	interactions.On("Like", mock.Anything, int64(5)).Return(nil)
	interactions.On("Like", mock.Anything, int64(6)).Return(apperror.NewNotFound(service.MsgPostNotFound, nil))
	r := postRouter(new(MockPostService), interactions, signedIn(1))

	w, env := perform(t, r, http.MethodPost, "/api/posts/5/view", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "view +1", env.Msg)

	w, _ = perform(t, r, http.MethodPost, "/api/posts/5/like", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = perform(t, r, http.MethodPost, "/api/posts/6/like", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	interactions.AssertExpectations(t)
}

func TestArchive(t *testing.T) {
	posts := new(MockPostService)
	posts.On("GetArchive", mock.Anything).Return(&dto.ArchiveResponse{Archive: []dto.ArchiveYear{
		{Year: 2024, Posts: []dto.ArchivePost{{ID: 1, Title: "A", Date: "2024-01-01"}}},
	}}, nil)

	w, env := perform(t, postRouter(posts, new(MockInteractionService), signedIn(1)), http.MethodGet, "/api/archive", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"archive":[{"year":2024,"posts":[{"id":1,"title":"A","date":"2024-01-01"}]}]}`, string(env.Data))
}
