package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/jadeniji/ideaboard-backend/internal/api/httpx"
	"github.com/jadeniji/ideaboard-backend/internal/api/validate"
	"github.com/jadeniji/ideaboard-backend/internal/config"
	"github.com/jadeniji/ideaboard-backend/internal/metrics"
	"github.com/jadeniji/ideaboard-backend/internal/middleware"
	"github.com/jadeniji/ideaboard-backend/internal/models"
	"github.com/jadeniji/ideaboard-backend/internal/pagination"
	"github.com/jadeniji/ideaboard-backend/internal/services"
	"github.com/jadeniji/ideaboard-backend/internal/session"
)

type RouterDeps struct {
	Cfg        config.Config
	Ideas      *services.IdeaService
	Feed       *services.FeedService
	Stats      *services.StatsService
	Moderation *services.ModerationService
	Users      *services.UserService
	AuthMW     *middleware.AuthMiddleware
}

// ideaView is an idea as one viewer sees it: the raw author reference
// is replaced with a role-dependent display name.
type ideaView struct {
	models.Idea
	AuthorDisplay string `json:"author_display"`
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	view := func(idea models.Idea, viewerRole models.Role) ideaView {
		return ideaView{Idea: idea, AuthorDisplay: d.Users.DisplayNameFor(viewerRole, idea.AuthorRef)}
	}
	viewAll := func(ideas []models.Idea, viewerRole models.Role) []ideaView {
		out := make([]ideaView, len(ideas))
		for i, idea := range ideas {
			out[i] = view(idea, viewerRole)
		}
		return out
	}
	viewerOf := func(r *http.Request) (uid string, role models.Role) {
		uid, _ = middleware.UserID(r.Context())
		if s, ok := middleware.Role(r.Context()); ok {
			role = models.Role(s)
		}
		return uid, role
	}
	writeIdeaErr := func(w http.ResponseWriter, err error) {
		switch {
		case errors.Is(err, services.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "not_found", "idea not found", nil)
		case errors.Is(err, services.ErrInvalidVote):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_vote", "direction must be up or down", nil)
		case errors.Is(err, services.ErrBadTransition):
			httpx.WriteError(w, http.StatusConflict, "bad_transition", err.Error(), nil)
		default:
			httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
		}
	}

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// ---------- auth ----------
		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				EmployeeID string `json:"employee_id"`
				Password   string `json:"password"`
			}
			if err := httpx.DecodeJSON(r, &req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed body", nil)
				return
			}
			var errs validate.Errs
			if e := validate.Required("employee_id", req.EmployeeID); e != nil {
				errs = append(errs, *e)
			}
			if e := validate.Required("password", req.Password); e != nil {
				errs = append(errs, *e)
			}
			if len(errs) > 0 {
				httpx.WriteError(w, http.StatusBadRequest, "validation", "invalid login request", errs)
				return
			}

			res, err := d.Users.Login(r.Context(), req.EmployeeID, req.Password)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, res)
		})

		r.Post("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				RefreshToken string `json:"refresh_token"`
			}
			if err := httpx.DecodeJSON(r, &req); err != nil || req.RefreshToken == "" {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "refresh_token required", nil)
				return
			}
			res, err := d.Users.Refresh(r.Context(), req.RefreshToken)
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, res)
		})

		// authenticated surface
		r.Group(func(r chi.Router) {
			r.Use(d.AuthMW.Auth)

			r.Get("/auth/session", func(w http.ResponseWriter, r *http.Request) {
				sid, _ := middleware.SessionID(r.Context())
				sess, err := d.Users.Restore(r.Context(), sid)
				if err != nil {
					if errors.Is(err, session.ErrStale) {
						httpx.WriteError(w, http.StatusUnauthorized, "session_stale", "session expired, sign in again", nil)
						return
					}
					httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "no active session", nil)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, sess)
			})

			r.Post("/auth/heartbeat", func(w http.ResponseWriter, r *http.Request) {
				sid, _ := middleware.SessionID(r.Context())
				if err := d.Users.Heartbeat(r.Context(), sid); err != nil {
					httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "no active session", nil)
					return
				}
				w.WriteHeader(http.StatusNoContent)
			})

			r.Post("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
				sid, _ := middleware.SessionID(r.Context())
				_ = d.Users.Logout(r.Context(), sid)
				w.WriteHeader(http.StatusNoContent)
			})

			// ---------- ideas ----------
			r.Get("/ideas", func(w http.ResponseWriter, r *http.Request) {
				uid, role := viewerOf(r)
				ideas, err := d.Ideas.List(uid)
				if err != nil {
					httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
					return
				}
				if cat := r.URL.Query().Get("category"); cat != "" {
					filtered := ideas[:0]
					for _, idea := range ideas {
						if idea.HasTag(cat) {
							filtered = append(filtered, idea)
						}
					}
					ideas = filtered
				}
				httpx.WriteJSON(w, http.StatusOK, viewAll(ideas, role))
			})

			r.Post("/ideas", func(w http.ResponseWriter, r *http.Request) {
				uid, role := viewerOf(r)
				var req struct {
					Title       string              `json:"title"`
					Content     string              `json:"content"`
					Tags        []string            `json:"tags"`
					Attachments []models.Attachment `json:"attachments"`
				}
				if err := httpx.DecodeJSON(r, &req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed body", nil)
					return
				}
				var errs validate.Errs
				if e := validate.Required("title", req.Title); e != nil {
					errs = append(errs, *e)
				}
				if e := validate.Required("content", req.Content); e != nil {
					errs = append(errs, *e)
				}
				if len(errs) > 0 {
					httpx.WriteError(w, http.StatusBadRequest, "validation", "invalid idea", errs)
					return
				}

				idea, err := d.Ideas.Submit(req.Title, req.Content, req.Tags, req.Attachments, uid)
				if err != nil {
					writeIdeaErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusCreated, view(idea, role))
			})

			r.Get("/ideas/{id}", func(w http.ResponseWriter, r *http.Request) {
				uid, role := viewerOf(r)
				id, err := strconv.Atoi(chi.URLParam(r, "id"))
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "id must be numeric", nil)
					return
				}
				idea, err := d.Ideas.Get(id, uid)
				if err != nil {
					writeIdeaErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, view(idea, role))
			})

			r.Put("/ideas/{id}", func(w http.ResponseWriter, r *http.Request) {
				uid, role := viewerOf(r)
				id, err := strconv.Atoi(chi.URLParam(r, "id"))
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "id must be numeric", nil)
					return
				}
				current, err := d.Ideas.Get(id, uid)
				if err != nil {
					writeIdeaErr(w, err)
					return
				}
				if role != models.RoleAdmin && current.AuthorRef != uid {
					httpx.WriteError(w, http.StatusForbidden, "forbidden", "not your idea", nil)
					return
				}

				var req struct {
					Title       string              `json:"title"`
					Content     string              `json:"content"`
					Tags        []string            `json:"tags"`
					Attachments []models.Attachment `json:"attachments"`
				}
				if err := httpx.DecodeJSON(r, &req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed body", nil)
					return
				}
				var errs validate.Errs
				if e := validate.Required("title", req.Title); e != nil {
					errs = append(errs, *e)
				}
				if e := validate.Required("content", req.Content); e != nil {
					errs = append(errs, *e)
				}
				if len(errs) > 0 {
					httpx.WriteError(w, http.StatusBadRequest, "validation", "invalid idea", errs)
					return
				}

				updated := current
				updated.Title = req.Title
				updated.Content = req.Content
				if req.Tags != nil {
					updated.Tags = req.Tags
				}
				if req.Attachments != nil {
					updated.Attachments = req.Attachments
				}
				if err := d.Ideas.Update(updated); err != nil {
					writeIdeaErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, view(updated, role))
			})

			r.Delete("/ideas/{id}", func(w http.ResponseWriter, r *http.Request) {
				uid, role := viewerOf(r)
				id, err := strconv.Atoi(chi.URLParam(r, "id"))
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "id must be numeric", nil)
					return
				}
				if role != models.RoleAdmin {
					idea, err := d.Ideas.Get(id, uid)
					if err != nil {
						writeIdeaErr(w, err)
						return
					}
					if idea.AuthorRef != uid {
						httpx.WriteError(w, http.StatusForbidden, "forbidden", "not your idea", nil)
						return
					}
				}
				if err := d.Ideas.Remove(id); err != nil {
					writeIdeaErr(w, err)
					return
				}
				w.WriteHeader(http.StatusNoContent)
			})

			r.Post("/ideas/{id}/vote", func(w http.ResponseWriter, r *http.Request) {
				uid, role := viewerOf(r)
				id, err := strconv.Atoi(chi.URLParam(r, "id"))
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "id must be numeric", nil)
					return
				}
				var req struct {
					Direction string `json:"direction"`
				}
				if err := httpx.DecodeJSON(r, &req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed body", nil)
					return
				}
				if e := validate.OneOf("direction", req.Direction, string(models.VoteUp), string(models.VoteDown)); e != nil {
					httpx.WriteError(w, http.StatusBadRequest, "validation", "invalid vote", validate.Errs{*e})
					return
				}

				idea, err := d.Ideas.Vote(id, uid, models.VoteDirection(req.Direction))
				if err != nil {
					writeIdeaErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, view(idea, role))
			})

			// ---------- comments ----------
			r.Get("/ideas/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
				uid, _ := viewerOf(r)
				id, err := strconv.Atoi(chi.URLParam(r, "id"))
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "id must be numeric", nil)
					return
				}
				idea, err := d.Ideas.Get(id, uid)
				if err != nil {
					writeIdeaErr(w, err)
					return
				}

				page, _ := strconv.Atoi(r.URL.Query().Get("page"))
				size, _ := strconv.Atoi(r.URL.Query().Get("size"))
				visible, clamped, totalPages := pagination.PageOf(idea.Comments, page, size)
				httpx.WriteJSON(w, http.StatusOK, map[string]any{
					"comments":    visible,
					"page":        clamped,
					"total_pages": totalPages,
					"total":       len(idea.Comments),
				})
			})

			r.Post("/ideas/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
				uid, role := viewerOf(r)
				id, err := strconv.Atoi(chi.URLParam(r, "id"))
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "id must be numeric", nil)
					return
				}
				var req struct {
					Text string `json:"text"`
				}
				if err := httpx.DecodeJSON(r, &req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed body", nil)
					return
				}
				if e := validate.Required("text", req.Text); e != nil {
					httpx.WriteError(w, http.StatusBadRequest, "validation", "invalid comment", validate.Errs{*e})
					return
				}

				display := d.Users.DisplayNameFor(role, uid)
				idea, err := d.Ideas.AddComment(id, req.Text, display, uid)
				if err != nil {
					writeIdeaErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusCreated, view(idea, role))
			})

			// ---------- feed ----------
			r.Get("/feed", func(w http.ResponseWriter, r *http.Request) {
				uid, _ := viewerOf(r)
				items := d.Feed.Aggregate(r.Context(), uid, r.URL.Query().Get("category"))
				httpx.WriteJSON(w, http.StatusOK, items)
			})

			// ---------- personal stats ----------
			r.Get("/me/stats", func(w http.ResponseWriter, r *http.Request) {
				uid, _ := viewerOf(r)
				st, err := d.Stats.ForUser(uid)
				if err != nil {
					httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, st)
			})

			// ---------- admin ----------
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(string(models.RoleAdmin)))

				r.Get("/admin/dashboard", func(w http.ResponseWriter, r *http.Request) {
					st, err := d.Stats.Dashboard()
					if err != nil {
						httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
						return
					}
					httpx.WriteJSON(w, http.StatusOK, st)
				})

				r.Get("/admin/activity", func(w http.ResponseWriter, r *http.Request) {
					limit := 20
					if v := r.URL.Query().Get("limit"); v != "" {
						if n, err := strconv.Atoi(v); err == nil && n > 0 {
							limit = n
						}
					}
					acts, err := d.Stats.RecentActivity(limit)
					if err != nil {
						httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
						return
					}
					httpx.WriteJSON(w, http.StatusOK, acts)
				})

				moderate := func(apply func(int) (models.Idea, error)) http.HandlerFunc {
					return func(w http.ResponseWriter, r *http.Request) {
						id, err := strconv.Atoi(chi.URLParam(r, "id"))
						if err != nil {
							httpx.WriteError(w, http.StatusBadRequest, "bad_request", "id must be numeric", nil)
							return
						}
						idea, err := apply(id)
						if err != nil {
							writeIdeaErr(w, err)
							return
						}
						httpx.WriteJSON(w, http.StatusOK, view(idea, models.RoleAdmin))
					}
				}
				r.Post("/admin/ideas/{id}/approve", moderate(d.Moderation.Approve))
				r.Post("/admin/ideas/{id}/reject", moderate(d.Moderation.Reject))
				r.Post("/admin/ideas/{id}/implement", moderate(d.Moderation.Implement))
			})
		})
	})

	return r
}
