package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mira-dev/mira/frontend/internal/apiclient"
	frontend_domain "github.com/mira-dev/mira/frontend/internal/domain"
	"github.com/mira-dev/mira/frontend/internal/view"
	"github.com/mira-dev/mira/shared/api"
	"github.com/mira-dev/mira/shared/domain"
	"github.com/mira-dev/mira/shared/logger"
	mw "github.com/mira-dev/mira/shared/middleware"
	"github.com/mira-dev/mira/shared/utils"
	"golang.org/x/sync/errgroup"
)

// ProfileGetHandler renders the dashboard. The four lists are fetched concurrently and a
// list that fails to load is shown empty.
func (h *Handler) ProfileGetHandler(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	log := logger.FromContext(r.Context())

	var (
		collabs  []domain.Collaboration
		comments []domain.Comment
		forums   []domain.ForumPost
		ongoing  []domain.Collaboration
	)
	g, ctx := errgroup.WithContext(r.Context())
	fetch := func(kind string, load func(context.Context) error) {
		g.Go(func() error {
			if err := load(ctx); err != nil {
				log.Warn("loading profile list", "kind", kind, "error", err)
			}
			return nil
		})
	}
	fetch(apiclient.ProfileCollabs, func(ctx context.Context) (err error) {
		collabs, err = h.APIClient.ProfileCollabs(ctx, sess)
		return err
	})
	fetch(apiclient.ProfileComments, func(ctx context.Context) (err error) {
		comments, err = h.APIClient.ProfileComments(ctx, sess)
		return err
	})
	fetch(apiclient.ProfileForums, func(ctx context.Context) (err error) {
		forums, err = h.APIClient.ProfileForums(ctx, sess)
		return err
	})
	fetch(apiclient.ProfileOngoingCollabs, func(ctx context.Context) (err error) {
		ongoing, err = h.APIClient.ProfileOngoingCollabs(ctx, sess)
		return err
	})
	_ = g.Wait()

	h.renderTemplate(w, r, "profile.html", frontend_domain.ProfilePageData{
		User:           mw.GetUserFromContext(r),
		Collabs:        view.NewCollabsTable(collabs, h.Location),
		Comments:       view.NewCommentsTable(comments, h.Location),
		Forums:         view.NewForumsTable(forums, h.Location),
		OngoingCollabs: view.NewOngoingCollabs(ongoing),
	})
}

// ProfileListAPIHandler serves one profile list as {"items": [...]} for client-side fetches.
func (h *Handler) ProfileListAPIHandler(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	ctx := r.Context()

	var (
		body any
		err  error
	)
	switch kind := chi.URLParam(r, "kind"); kind {
	case apiclient.ProfileCollabs:
		body, err = listResponse(h.APIClient.ProfileCollabs(ctx, sess))
	case apiclient.ProfileComments:
		body, err = listResponse(h.APIClient.ProfileComments(ctx, sess))
	case apiclient.ProfileForums:
		body, err = listResponse(h.APIClient.ProfileForums(ctx, sess))
	case apiclient.ProfileOngoingCollabs:
		body, err = listResponse(h.APIClient.ProfileOngoingCollabs(ctx, sess))
	default:
		utils.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "unknown list " + kind})
		return
	}
	if err != nil {
		logger.FromContext(ctx).Warn("profile list proxy", "error", err)
		status := http.StatusBadGateway
		if apiclient.KindOf(err) == apiclient.KindHTTP {
			status = backendFailureStatus(err)
		}
		utils.WriteJSON(w, status, map[string]string{"error": apiclient.HandleErrors(err).Error()})
		return
	}
	utils.WriteJSON(w, http.StatusOK, body)
}

func listResponse[T any](items []T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return api.ListResponse[T]{Items: items}, nil
}
