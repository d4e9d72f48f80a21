package apiclient_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoUserManagement/UserManagement/internal/api"
	"github.com/GoUserManagement/UserManagement/internal/config"
	"github.com/GoUserManagement/UserManagement/internal/db/controller/group"
	"github.com/GoUserManagement/UserManagement/internal/db/controller/user"
	"github.com/GoUserManagement/UserManagement/internal/db/dbtest"
	"github.com/GoUserManagement/UserManagement/internal/dto"
	"github.com/GoUserManagement/UserManagement/internal/service"
	"github.com/GoUserManagement/UserManagement/internal/web/apiclient"
)

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := apiclient.New("localhost:5000", time.Second)
	assert.Error(t, err)
}

func TestErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/prefix/api/users/7":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"User with ID 7 not found."}`))
		case "/prefix/api/users":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"title":"One or more validation errors occurred.","status":400}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		}
	}))
	defer srv.Close()

	c, err := apiclient.New(srv.URL+"/prefix", time.Second)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = c.GetUser(ctx, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, apiclient.ErrNotFound)

	var apiErr *apiclient.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "User with ID 7 not found.", apiErr.Message)

	_, err = c.CreateUser(ctx, dto.CreateUser{})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "One or more validation errors occurred.", apiErr.Message)
	assert.NotErrorIs(t, err, apiclient.ErrNotFound)

	_, err = c.CountUsers(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "boom", apiErr.Message)
}

func TestRequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/users/3", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in dto.UpdateUser
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, []uint{2, 3}, in.GroupIDs)

		_ = json.NewEncoder(w).Encode(dto.User{ID: 3, FirstName: in.FirstName})
	}))
	defer srv.Close()

	c, err := apiclient.New(srv.URL, time.Second)
	require.NoError(t, err)

	u, err := c.UpdateUser(context.Background(), 3, dto.UpdateUser{FirstName: "Jane", GroupIDs: []uint{2, 3}})
	require.NoError(t, err)
	assert.Equal(t, "Jane", u.FirstName)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := apiclient.New(srv.URL, 20*time.Millisecond)
	require.NoError(t, err)

	_, err = c.ListUsers(context.Background())
	assert.Error(t, err)
}

func TestAgainstAPI(t *testing.T) {
	db := dbtest.New(t, true)

	users, err := user.New(db)
	require.NoError(t, err)

	groups, err := group.New(db)
	require.NoError(t, err)

	srv := api.New(&config.Config{
		API: config.Webserver{Port: 1, URL: "http://localhost", ShutDownTime: 1},
	}, service.NewUserService(users), service.NewGroupService(groups))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv.Serve(ln)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		_ = srv.App.ShutdownWithContext(ctx)
	})

	c, err := apiclient.New("http://"+ln.Addr().String()+"/", 5*time.Second)
	require.NoError(t, err)

	ctx := context.Background()

	require.Eventually(t, func() bool {
		_, err := c.CountUsers(ctx)

		return err == nil
	}, 2*time.Second, 20*time.Millisecond)

	list, err := c.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	gs, err := c.ListGroups(ctx)
	require.NoError(t, err)
	assert.Len(t, gs, 3)

	created, err := c.CreateUser(ctx, dto.CreateUser{
		FirstName: "Client",
		LastName:  "Test",
		Email:     "client@example.com",
		GroupIDs:  []uint{2},
	})
	require.NoError(t, err)
	assert.Equal(t, "Level 1", created.Groups[0].Name)

	counts, err := c.CountUsersByGroup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[1].UserCount)

	n, err := c.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	require.NoError(t, c.DeleteUser(ctx, created.ID))

	_, err = c.GetUser(ctx, created.ID)
	assert.ErrorIs(t, err, apiclient.ErrNotFound)

	err = c.DeleteUser(ctx, created.ID)
	assert.ErrorIs(t, err, apiclient.ErrNotFound)
}
