// Package navigation holds the page title, active menu entry and breadcrumbs of a page.
package navigation

// Menu entries of the base layout.
const (
	PageUsers  = "users"
	PageCreate = "create"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context is passed to every template as .Navigation.
type Context struct {
	PageTitle   string
	ActivePage  string
	Breadcrumbs []BreadcrumbItem
}

// NewContext creates a navigation context starting at the users list.
func NewContext(pageTitle, activePage string) *Context {
	return &Context{
		PageTitle:   pageTitle,
		ActivePage:  activePage,
		Breadcrumbs: []BreadcrumbItem{{Title: "Users", URL: "/users"}},
	}
}

// AddBreadcrumb appends a breadcrumb, an active item ends the trail.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// Current marks the last breadcrumb as the active page.
func (c *Context) Current() *Context {
	if n := len(c.Breadcrumbs); n > 0 {
		c.Breadcrumbs[n-1].Active = true
	}

	return c
}

// IsActive checks if page is the active menu entry.
func (c *Context) IsActive(page string) bool {
	return c.ActivePage == page
}
