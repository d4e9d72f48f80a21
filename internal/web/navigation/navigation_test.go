package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("Users", PageUsers)

	assert.Equal(t, "Users", ctx.PageTitle)
	assert.Equal(t, PageUsers, ctx.ActivePage)
	assert.Equal(t, []BreadcrumbItem{{Title: "Users", URL: "/users"}}, ctx.Breadcrumbs)
}

func TestContext_AddBreadcrumb_Chaining(t *testing.T) {
	ctx := NewContext("Edit user", "").
		AddBreadcrumb("Jane Smith", "/users/3", false).
		AddBreadcrumb("Edit", "/users/3/edit", true)

	assert.Len(t, ctx.Breadcrumbs, 3)
	assert.Equal(t, "Jane Smith", ctx.Breadcrumbs[1].Title)
	assert.False(t, ctx.Breadcrumbs[1].Active)
	assert.True(t, ctx.Breadcrumbs[2].Active)
}

func TestContext_Current(t *testing.T) {
	ctx := NewContext("Users", PageUsers).Current()

	assert.True(t, ctx.Breadcrumbs[0].Active)

	empty := &Context{}
	assert.Same(t, empty, empty.Current())
}

func TestContext_IsActive(t *testing.T) {
	ctx := NewContext("Create user", PageCreate)

	assert.True(t, ctx.IsActive(PageCreate))
	assert.False(t, ctx.IsActive(PageUsers))
}
