// Package routes builds the URLs of this service's pages so handlers, view models and
// templates agree on them.
package routes

import (
	"net/url"
	"strconv"
)

const (
	Home             = "/"
	Forums           = "/forum"
	ForumCreate      = "/forum/buat"
	Collaborations   = "/kolaborasi"
	CollabCreate     = "/kolaborasi/buat"
	Messages         = "/pesan"
	DirectMessages   = "/direct-messages"
	Profile          = "/profil"
	Login            = "/login"
	Register         = "/auth/register"
	Logout           = "/logout"
	TabPersonal      = "personal"
	collabJoinSuffix = "/join"
)

func Forum(slug string) string {
	return Forums + "/" + url.PathEscape(slug)
}

func Collaboration(id int64) string {
	return Collaborations + "/" + strconv.FormatInt(id, 10)
}

func CollaborationJoin(id int64) string {
	return Collaboration(id) + collabJoinSuffix
}

// PersonalChat is where a successful direct message lands.
func PersonalChat(userID int64) string {
	q := url.Values{}
	q.Set("tab", TabPersonal)
	q.Set("user", strconv.FormatInt(userID, 10))
	return Messages + "?" + q.Encode()
}
