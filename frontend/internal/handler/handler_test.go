package handler

import (
	"encoding/json"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mira-dev/mira/frontend/internal/apiclient"
	"github.com/mira-dev/mira/frontend/internal/cache"
	"github.com/mira-dev/mira/frontend/internal/flash"
	"github.com/mira-dev/mira/frontend/internal/markdown"
	"github.com/mira-dev/mira/frontend/templates"
	"github.com/mira-dev/mira/shared/api"
	"github.com/mira-dev/mira/shared/config"
	"github.com/mira-dev/mira/shared/domain"
	mw "github.com/mira-dev/mira/shared/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = &domain.User{Id: 7, Name: "Budi", Email: "budi@example.com"}

func newTestHandler(t *testing.T, backend http.HandlerFunc) *Handler {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client := apiclient.New(apiclient.Config{
		BaseURL:  srv.URL,
		Timeout:  2 * time.Second,
		CacheTTL: time.Minute,
	}, cache.NewMemory())
	return New(templates.MustLoad(), config.Public{TimeZone: "UTC"}, markdown.New(), client, flash.New(false, time.Minute))
}

// serve runs fn behind the flash session and, when user is set, a signed-in context.
func serve(h *Handler, user *domain.User, method, pattern string, fn http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Use(h.Flash.Middleware)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if user != nil {
				req = req.WithContext(mw.WithUser(req.Context(), user))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Method(method, pattern, fn)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == flash.CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", flash.CookieName)
	return nil
}

func TestIndexHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	IndexHandler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/forum", rec.Header().Get("Location"))
}

func TestDirectMessagePost(t *testing.T) {
	t.Run("form post redirects to the personal chat", func(t *testing.T) {
		var got api.SendDirectMessageRequest
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/direct-messages", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusCreated)
		})

		rec := serve(h, testUser, http.MethodPost, "/direct-messages", h.DirectMessagePostHandler,
			postForm("/direct-messages", url.Values{"receiver_id": {"3"}, "message": {"halo"}}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/pesan?tab=personal&user=3", rec.Header().Get("Location"))
		assert.Equal(t, api.SendDirectMessageRequest{ReceiverId: 3, Message: "halo"}, got)
	})

	t.Run("json post answers with the redirect", func(t *testing.T) {
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
		req := httptest.NewRequest(http.MethodPost, "/direct-messages", strings.NewReader(`{"receiver_id":3,"message":"halo"}`))
		req.Header.Set("Content-Type", "application/json")

		rec := serve(h, testUser, http.MethodPost, "/direct-messages", h.DirectMessagePostHandler, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"redirect":"/pesan?tab=personal&user=3"}`, rec.Body.String())
	})

	t.Run("backend rejection is shown as alert", func(t *testing.T) {
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"receiver blocked you"}`))
		})
		req := httptest.NewRequest(http.MethodPost, "/direct-messages", strings.NewReader(`{"receiver_id":3,"message":"halo"}`))
		req.Header.Set("Content-Type", "application/json")

		rec := serve(h, testUser, http.MethodPost, "/direct-messages", h.DirectMessagePostHandler, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"error":"receiver blocked you"}`, rec.Body.String())
	})

	t.Run("backend down", func(t *testing.T) {
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`<html>boom</html>`))
		})
		req := httptest.NewRequest(http.MethodPost, "/direct-messages", strings.NewReader(`{"receiver_id":3,"message":"halo"}`))
		req.Header.Set("Content-Type", "application/json")

		rec := serve(h, testUser, http.MethodPost, "/direct-messages", h.DirectMessagePostHandler, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.JSONEq(t, `{"error":"Failed to send message."}`, rec.Body.String())
	})

	t.Run("empty message never reaches the backend", func(t *testing.T) {
		var hits atomic.Int32
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		})
		req := httptest.NewRequest(http.MethodPost, "/direct-messages", strings.NewReader(`{"receiver_id":3,"message":"   "}`))
		req.Header.Set("Content-Type", "application/json")

		rec := serve(h, testUser, http.MethodPost, "/direct-messages", h.DirectMessagePostHandler, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, `{"error":"Message cannot be empty."}`, rec.Body.String())
		assert.Zero(t, hits.Load())
	})

	t.Run("invalid receiver", func(t *testing.T) {
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {})

		rec := serve(h, testUser, http.MethodPost, "/direct-messages", h.DirectMessagePostHandler,
			postForm("/direct-messages", url.Values{"receiver_id": {"abc"}, "message": {"halo"}}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDirectMessageFailureKeepsDraft(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/direct-messages":
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error":"receiver blocked you"}`))
		default:
			_, _ = w.Write([]byte(`{"items":[]}`))
		}
	})

	rec := serve(h, testUser, http.MethodPost, "/direct-messages", h.DirectMessagePostHandler,
		postForm("/direct-messages", url.Values{"receiver_id": {"3"}, "message": {"draf saya"}}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	location := rec.Header().Get("Location")
	assert.Equal(t, "/pesan?tab=personal&user=3", location)

	req := httptest.NewRequest(http.MethodGet, location, nil)
	req.AddCookie(sessionCookie(t, rec))
	page := serve(h, testUser, http.MethodGet, "/pesan", h.ChatGetHandler, req)

	require.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	assert.Contains(t, body, "receiver blocked you")
	assert.Contains(t, body, "draf saya")
}

var returnToField = regexp.MustCompile(`name="return_to" value="([^"]*)"`)

func TestChatPageSendFailureReturnsToChat(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/direct-messages":
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"receiver blocked you"}`))
		default:
			_, _ = w.Write([]byte(`{"items":[]}`))
		}
	})

	page := serve(h, testUser, http.MethodGet, "/pesan", h.ChatGetHandler,
		httptest.NewRequest(http.MethodGet, "/pesan?user=3", nil))
	require.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	assert.NotContains(t, body, `href="/direct-messages"`)
	assert.Contains(t, body, `disabled>Kirim</button>`, "empty message cannot be sent")

	m := returnToField.FindStringSubmatch(body)
	require.Len(t, m, 2)
	returnTo := html.UnescapeString(m[1])
	assert.Equal(t, "/pesan?tab=personal&user=3", returnTo)

	rec := serve(h, testUser, http.MethodPost, "/direct-messages", h.DirectMessagePostHandler,
		postForm("/direct-messages", url.Values{"receiver_id": {"3"}, "message": {"halo"}, "return_to": {returnTo}}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/pesan?tab=personal&user=3", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, rec.Header().Get("Location"), nil)
	req.AddCookie(sessionCookie(t, rec))
	again := serve(h, testUser, http.MethodGet, "/pesan", h.ChatGetHandler, req)
	require.Equal(t, http.StatusOK, again.Code)
	assert.Contains(t, again.Body.String(), "receiver blocked you")
	assert.NotContains(t, again.Body.String(), `disabled>Kirim</button>`, "the kept draft can be sent again")
}

const collabJSON = `{"id":5,"title":"Aplikasi Tani","description":"**Ayo**","status":"open","owner":{"id":2,"name":"Sari"},"collaborators":[{"id":3,"name":"Andi"}]}`

func TestCollaborationJoin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var body []byte
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/kolaborasi/5/join", r.URL.Path)
			body, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusCreated)
		})

		rec := serve(h, testUser, http.MethodPost, "/kolaborasi/{id}/join", h.CollaborationJoinPostHandler,
			postForm("/kolaborasi/5/join", url.Values{"message": {"saya ikut"}}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/kolaborasi/5", rec.Header().Get("Location"))
		assert.JSONEq(t, `{"message":"saya ikut"}`, string(body))
	})

	t.Run("long message is truncated", func(t *testing.T) {
		var got api.JoinCollaborationRequest
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusCreated)
		})

		serve(h, testUser, http.MethodPost, "/kolaborasi/{id}/join", h.CollaborationJoinPostHandler,
			postForm("/kolaborasi/5/join", url.Values{"message": {strings.Repeat("é", 600)}}))

		assert.Equal(t, 500, len([]rune(got.Message)))
	})

	t.Run("failure reopens the dialog with the draft", func(t *testing.T) {
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(`{"message":"Kolaborasi sudah penuh"}`))
				return
			}
			_, _ = w.Write([]byte(collabJSON))
		})

		rec := serve(h, testUser, http.MethodPost, "/kolaborasi/{id}/join", h.CollaborationJoinPostHandler,
			postForm("/kolaborasi/5/join", url.Values{"message": {"saya ikut"}}))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/kolaborasi/5", rec.Header().Get("Location"))

		req := httptest.NewRequest(http.MethodGet, "/kolaborasi/5", nil)
		req.AddCookie(sessionCookie(t, rec))
		page := serve(h, testUser, http.MethodGet, "/kolaborasi/{id}", h.CollaborationGetHandler, req)

		require.Equal(t, http.StatusOK, page.Code)
		body := page.Body.String()
		assert.Contains(t, body, "Kolaborasi sudah penuh")
		assert.Contains(t, body, "saya ikut")
		assert.Contains(t, body, "9/500")
		assert.Contains(t, body, `<dialog class="dialog" open>`)
	})

	t.Run("invalid id", func(t *testing.T) {
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {})

		rec := serve(h, testUser, http.MethodPost, "/kolaborasi/{id}/join", h.CollaborationJoinPostHandler,
			postForm("/kolaborasi/x/join", url.Values{}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCollaborationGetHandler(t *testing.T) {
	t.Run("anonymous visitor sees no dialogs", func(t *testing.T) {
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(collabJSON))
		})

		rec := serve(h, nil, http.MethodGet, "/kolaborasi/{id}", h.CollaborationGetHandler,
			httptest.NewRequest(http.MethodGet, "/kolaborasi/5", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Aplikasi Tani")
		assert.Contains(t, body, "<strong>Ayo</strong>")
		assert.NotContains(t, body, "<dialog")
	})

	t.Run("member cannot join again", func(t *testing.T) {
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(collabJSON))
		})

		rec := serve(h, &domain.User{Id: 3, Name: "Andi"}, http.MethodGet, "/kolaborasi/{id}", h.CollaborationGetHandler,
			httptest.NewRequest(http.MethodGet, "/kolaborasi/5?join=1", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Anda anggota kolaborasi ini.")
		assert.NotContains(t, rec.Body.String(), "<dialog")
	})

	t.Run("not found", func(t *testing.T) {
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		rec := serve(h, testUser, http.MethodGet, "/kolaborasi/{id}", h.CollaborationGetHandler,
			httptest.NewRequest(http.MethodGet, "/kolaborasi/5", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestForumListForwardsFilters(t *testing.T) {
	var query url.Values
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{"items":[{"id":1,"title":"Belajar Go","slug":"belajar-go","tags":["go","web","api","extra"]}]}`))
	})

	rec := serve(h, nil, http.MethodGet, "/forum", h.ForumListGetHandler,
		httptest.NewRequest(http.MethodGet, "/forum?search=go&category=teknologi&sort=bogus", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "go", query.Get("search"))
	assert.Equal(t, "teknologi", query.Get("category"))
	assert.Empty(t, query.Get("sort"), "invalid sort falls back to the default, which is not sent")

	body := rec.Body.String()
	assert.Contains(t, body, "Belajar Go")
	assert.Contains(t, body, `href="/forum/belajar-go"`)
	assert.NotContains(t, body, ">extra<", "cards show at most three tags")
	assert.Contains(t, body, `<a class="button secondary" href="/forum">Atur ulang</a>`)
	assert.Contains(t, body, `<a href="/forum?category=teknologi">hapus pencarian</a>`)
}

func TestForumListBackendDown(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {})
	h.APIClient = apiclient.New(apiclient.Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, nil)

	rec := serve(h, nil, http.MethodGet, "/forum", h.ForumListGetHandler,
		httptest.NewRequest(http.MethodGet, "/forum", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), msgBackendUnavailable)
	assert.Contains(t, rec.Body.String(), "Belum ada forum.")
	assert.NotContains(t, rec.Body.String(), "Atur ulang", "default filters have nothing to reset")
}

func TestCollaborationCreateValidation(t *testing.T) {
	var hits atomic.Int32
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	rec := serve(h, testUser, http.MethodPost, "/kolaborasi/buat", h.CollaborationCreatePostHandler,
		postForm("/kolaborasi/buat", url.Values{"title": {""}, "description": {"desc"}}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Wajib diisi.")
	assert.Contains(t, rec.Body.String(), "desc", "entered values are kept")
	assert.Zero(t, hits.Load())
}

func TestCollaborationCreateBackendValidation(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"The given data was invalid.","errors":{"title":["Judul sudah dipakai."]}}`))
	})

	rec := serve(h, testUser, http.MethodPost, "/kolaborasi/buat", h.CollaborationCreatePostHandler,
		postForm("/kolaborasi/buat", url.Values{"title": {"Tani"}, "description": {"desc"}}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Judul sudah dipakai.")
}

func TestCollaborationCreateSuccess(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":12}`))
	})

	rec := serve(h, testUser, http.MethodPost, "/kolaborasi/buat", h.CollaborationCreatePostHandler,
		postForm("/kolaborasi/buat", url.Values{"title": {"Tani"}, "description": {"desc"}, "max_members": {"4"}}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/kolaborasi/12", rec.Header().Get("Location"))
}

func TestProfileListAPIHandler(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/profile/forums", r.URL.Path)
		_, _ = w.Write([]byte(`{"items":[{"id":1,"title":"Go","slug":"go"},{"id":0,"title":"broken"}]}`))
	})

	t.Run("known list", func(t *testing.T) {
		rec := serve(h, testUser, http.MethodGet, "/api/profile/{kind}", h.ProfileListAPIHandler,
			httptest.NewRequest(http.MethodGet, "/api/profile/forums", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var reply api.ListResponse[domain.ForumPost]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
		require.Len(t, reply.Items, 1)
		assert.Equal(t, "Go", reply.Items[0].Title)
	})

	t.Run("unknown list", func(t *testing.T) {
		rec := serve(h, testUser, http.MethodGet, "/api/profile/{kind}", h.ProfileListAPIHandler,
			httptest.NewRequest(http.MethodGet, "/api/profile/secrets", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestProfileGetHandler(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/profile/collabs":
			_, _ = w.Write([]byte(`{"items":[` + collabJSON + `]}`))
		case "/api/profile/forums":
			_, _ = w.Write([]byte(`{"items":[{"id":1,"title":"Belajar Go","slug":"belajar-go"}]}`))
		case "/api/profile/comments":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte(`{"items":[]}`))
		}
	})

	rec := serve(h, testUser, http.MethodGet, "/profil", h.ProfileGetHandler,
		httptest.NewRequest(http.MethodGet, "/profil", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Budi")
	assert.Contains(t, body, "Aplikasi Tani")
	assert.Contains(t, body, "Belajar Go")
	assert.Contains(t, body, "Belum ada komentar.", "a failed list renders empty")
	assert.Contains(t, body, "Tidak ada kolaborasi yang sedang berjalan.")
}

func TestLoginPost(t *testing.T) {
	t.Run("forwards backend cookies", func(t *testing.T) {
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/auth/login", r.URL.Path)
			http.SetCookie(w, &http.Cookie{Name: "accessToken", Value: "jwt", Path: "/"})
			w.WriteHeader(http.StatusOK)
		})

		rec := serve(h, nil, http.MethodPost, "/login", h.LoginPostHandler,
			postForm("/login", url.Values{"email": {"budi@example.com"}, "password": {"rahasia123"}}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/forum", rec.Header().Get("Location"))
		var names []string
		for _, c := range rec.Result().Cookies() {
			names = append(names, c.Name)
		}
		assert.Contains(t, names, "accessToken")
	})

	t.Run("rejected login keeps the email", func(t *testing.T) {
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Email atau kata sandi salah"}`))
		})

		rec := serve(h, nil, http.MethodPost, "/login", h.LoginPostHandler,
			postForm("/login", url.Values{"email": {"budi@example.com"}, "password": {"salah"}}))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))

		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.AddCookie(sessionCookie(t, rec))
		page := serve(h, nil, http.MethodGet, "/login", h.LoginGetHandler, req)

		require.Equal(t, http.StatusOK, page.Code)
		assert.Contains(t, page.Body.String(), "Email atau kata sandi salah")
		assert.Contains(t, page.Body.String(), `value="budi@example.com"`)
	})

	t.Run("invalid email is caught locally", func(t *testing.T) {
		var hits atomic.Int32
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		})

		rec := serve(h, nil, http.MethodPost, "/login", h.LoginPostHandler,
			postForm("/login", url.Values{"email": {"bukan-email"}, "password": {"x"}}))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Format email tidak valid.")
		assert.Zero(t, hits.Load())
	})
}

func TestRegisterPost(t *testing.T) {
	form := url.Values{
		"name":                  {"Budi"},
		"email":                 {"budi@example.com"},
		"password":              {"rahasia123"},
		"password_confirmation": {"rahasia123"},
	}

	t.Run("without session goes to login", func(t *testing.T) {
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})

		rec := serve(h, nil, http.MethodPost, "/auth/register", h.RegisterPostHandler, postForm("/auth/register", form))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("with session goes to the forum", func(t *testing.T) {
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
			http.SetCookie(w, &http.Cookie{Name: "accessToken", Value: "jwt"})
			w.WriteHeader(http.StatusCreated)
		})

		rec := serve(h, nil, http.MethodPost, "/auth/register", h.RegisterPostHandler, postForm("/auth/register", form))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/forum", rec.Header().Get("Location"))
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {})
		bad := url.Values{}
		for k, v := range form {
			bad[k] = v
		}
		bad.Set("password_confirmation", "lain")

		rec := serve(h, nil, http.MethodPost, "/auth/register", h.RegisterPostHandler, postForm("/auth/register", bad))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Konfirmasi tidak cocok.")
	})
}

func TestHealthHandler(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	h.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","backend":"closed"}`, rec.Body.String())
}

func TestSafeReturnPath(t *testing.T) {
	assert.Equal(t, "/kolaborasi/5", safeReturnPath("/kolaborasi/5", "/x"))
	assert.Equal(t, "/x", safeReturnPath("//evil.example", "/x"))
	assert.Equal(t, "/x", safeReturnPath("https://evil.example", "/x"))
	assert.Equal(t, "/x", safeReturnPath("", "/x"))
}

func TestBackendFailureStatus(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, backendFailureStatus(&apiclient.HTTPError{StatusCode: http.StatusForbidden}))
	assert.Equal(t, http.StatusBadGateway, backendFailureStatus(&apiclient.HTTPError{StatusCode: http.StatusServiceUnavailable}))
	assert.Equal(t, http.StatusBadGateway, backendFailureStatus(&apiclient.NetworkError{Err: io.EOF}))
}
