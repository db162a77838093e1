// Package policy holds the read-access rules for blog posts. Every read path
// (single view, category listing, dashboards) must agree with CanView.
package policy

import "github.com/careloop/health-blog/backend/internal/models"

// CanView reports whether viewer may read post.
//
// Published posts are visible to any authenticated viewer. Drafts are visible
// only to the doctor who authored them, or to a superuser account used by
// back-office tooling.
func CanView(viewer *models.User, post *models.BlogPost) bool {
	if viewer == nil || post == nil {
		return false
	}
	if !post.IsDraft {
		return true
	}
	if viewer.IsSuperuser {
		return true
	}
	return viewer.Role == models.RoleDoctor && viewer.ID == post.AuthorID
}
