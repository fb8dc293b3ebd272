package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	frontend_domain "github.com/mira-dev/mira/frontend/internal/domain"
	"github.com/mira-dev/mira/frontend/internal/filters"
	"github.com/mira-dev/mira/frontend/internal/forms"
	"github.com/mira-dev/mira/frontend/internal/markdown"
	"github.com/mira-dev/mira/frontend/internal/routes"
	"github.com/mira-dev/mira/frontend/internal/view"
	"github.com/mira-dev/mira/shared/api"
	"github.com/mira-dev/mira/shared/logger"
	"github.com/mira-dev/mira/shared/utils"
)

var forumFormFields = []string{"title", "description", "category", "tags"}

func (h *Handler) ForumListGetHandler(w http.ResponseWriter, r *http.Request) {
	state := filters.FromQuery(r.URL.Query())
	data := frontend_domain.ForumListPageData{
		Filters:    state,
		Sorts:      filters.Sorts(),
		Categories: filters.Categories(),
	}
	if !state.IsDefault() {
		data.ResetURL = filters.Default().URL(routes.Forums)
	}
	if state.Search != "" {
		data.ClearSearchURL = state.WithSearch("").URL(routes.Forums)
	}

	posts, err := h.APIClient.ListForums(r.Context(), session(r), state.Query())
	if err != nil {
		logger.FromContext(r.Context()).Warn("listing forums", "error", err)
		data.LoadError = userMessage(err)
	}
	// cards show a plain text excerpt of the markdown description
	for i := range posts {
		posts[i].Description = h.Markdown.Plain(posts[i].Description)
	}
	data.Cards = view.NewForumCards(posts, h.Location)

	h.renderTemplate(w, r, "forum_list.html", data)
}

func (h *Handler) ForumGetHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	sess := session(r)

	post, err := h.APIClient.GetForum(r.Context(), sess, slug)
	if err != nil {
		writeBackendError(w, r, err, "forum")
		return
	}

	card := view.NewForumCard(post, h.Location)
	data := frontend_domain.ForumPageData{
		Forum:       post,
		Description: h.Markdown.Render(post.Description, markdown.Full),
		Tags:        []string(post.Tags),
		Category:    post.Category,
		CreatedAt:   card.CreatedAt,
		Author:      card.Author,
		EmptyText:   view.EmptyComments,
	}

	comments, err := h.APIClient.ListForumComments(r.Context(), sess, slug)
	if err != nil {
		logger.FromContext(r.Context()).Warn("listing forum comments", "slug", slug, "error", err)
	}
	for _, c := range comments {
		data.Comments = append(data.Comments, frontend_domain.Comment{
			Author:    c.Author.DisplayName(),
			CreatedAt: view.FormatDate(c.CreatedAt, h.Location),
			HTML:      h.Markdown.Render(c.Body, markdown.Inline),
		})
	}

	h.renderTemplate(w, r, "forum.html", data)
}

func (h *Handler) ForumCreateGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "forum_create.html", frontend_domain.ForumCreatePageData{
		Categories: filters.Categories(),
	})
}

func (h *Handler) ForumCreatePostHandler(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	values := forms.FormValues(r.PostForm, forumFormFields...)
	req := api.CreateForumRequest{
		Title:       values.Get("title"),
		Description: values.Get("description"),
		Category:    values.Get("category"),
		Tags:        splitAndTrim(values.Get("tags")),
	}

	err := utils.Validate.Struct(req)
	var created api.CreatedResponse
	if err == nil {
		created, err = h.APIClient.CreateForum(r.Context(), session(r), req)
	}
	if err != nil {
		if state, ok := validationState(err, values); ok {
			h.renderTemplateWithStatus(w, r, http.StatusUnprocessableEntity, "forum_create.html", frontend_domain.ForumCreatePageData{
				Form:       state,
				Categories: filters.Categories(),
			})
			return
		}
		logger.FromContext(r.Context()).Error("creating forum", "error", err)
		h.redirectWithError(w, r, routes.ForumCreate, userMessage(err))
		return
	}

	target := routes.Forums
	if created.Slug != "" {
		target = routes.Forum(created.Slug)
	}
	h.redirectWithSuccess(w, r, target, "Forum berhasil dibuat.")
}
