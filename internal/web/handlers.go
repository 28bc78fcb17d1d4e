package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/coopco/renewdash/internal/notify"
	"github.com/coopco/renewdash/internal/schedule"
	"github.com/coopco/renewdash/internal/session"
	"github.com/coopco/renewdash/internal/settings"
)

func (s *Server) handleListAccounts(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, s.store.Accounts())
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var acc settings.Account
	if err := json.NewDecoder(r.Body).Decode(&acc); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}
	created, err := s.store.AddAccount(acc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "保存失败")
		return
	}
	writeSuccess(w, created)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var acc settings.Account
	if err := json.NewDecoder(r.Body).Decode(&acc); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}
	id := r.PathValue("id")
	if err := s.store.UpdateAccount(id, acc); err != nil {
		writeError(w, http.StatusNotFound, "账户不存在")
		return
	}
	acc.ID = id
	writeSuccess(w, acc)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAccount(r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, "账户不存在")
		return
	}
	writeSuccess(w, map[string]bool{"deleted": true})
}

type actionResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (s *Server) handleCheckinAll(w http.ResponseWriter, r *http.Request) {
	var results []actionResult
	for _, acc := range s.store.Accounts() {
		if !acc.Enabled {
			continue
		}
		status, err := s.runner.Checkin(r.Context(), acc)
		if err != nil {
			status = err.Error()
		}
		results = append(results, actionResult{ID: acc.ID, Status: status})
	}
	writeSuccess(w, results)
}

func (s *Server) handleCheckinOne(w http.ResponseWriter, r *http.Request) {
	acc, ok := s.store.FindAccount(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "账户不存在")
		return
	}
	status, err := s.runner.Checkin(r.Context(), acc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeSuccess(w, actionResult{ID: acc.ID, Status: status})
}

func (s *Server) handleRenewAll(w http.ResponseWriter, r *http.Request) {
	var results []actionResult
	for _, acc := range s.store.Accounts() {
		if acc.APIKey == "" {
			continue
		}
		status, err := s.runner.Renew(r.Context(), acc)
		if err != nil {
			status = err.Error()
		}
		results = append(results, actionResult{ID: acc.ID, Status: status})
	}
	writeSuccess(w, results)
}

func (s *Server) handleRenewOne(w http.ResponseWriter, r *http.Request) {
	acc, ok := s.store.FindAccount(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "账户不存在")
		return
	}
	if acc.APIKey == "" {
		writeError(w, http.StatusBadRequest, "账户没有 API Key，无法续费")
		return
	}
	status, err := s.runner.Renew(r.Context(), acc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeSuccess(w, actionResult{ID: acc.ID, Status: status})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, s.store.Settings())
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}
	updated := settings.Default()
	if err := json.Unmarshal(body, &updated); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	updated.CronSchedule = schedule.Normalize(updated.CronSchedule)
	if d := schedule.Parse(updated.CronSchedule); d.Mode == schedule.ModeCustom {
		if err := schedule.Validate(updated.CronSchedule); err != nil {
			slog.Warn("settings: custom cron expression does not parse",
				"expression", updated.CronSchedule, "error", err)
		}
	}
	updated.NotifyChannels = notify.Normalize(body)

	if err := s.store.UpdateSettings(updated); err != nil {
		writeError(w, http.StatusInternalServerError, "保存失败")
		return
	}
	writeSuccess(w, s.store.Settings())
}

func (s *Server) handleSchedulePreview(w http.ResponseWriter, r *http.Request) {
	d := schedule.Parse(r.URL.Query().Get("cron"))
	expr := schedule.Build(d)
	first, second := schedule.Preview(d, s.now())

	data := map[string]any{
		"mode":       d.Mode,
		"expression": expr,
		"valid":      schedule.Validate(expr) == nil,
		"first":      formatPreview(first),
		"second":     formatPreview(second),
	}
	writeSuccess(w, data)
}

func formatPreview(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02 15:04")
}

func (s *Server) handleNotifyTest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChannelID string `json:"channel_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChannelID == "" {
		writeError(w, http.StatusBadRequest, "缺少通知渠道 ID")
		return
	}
	channels := s.store.Settings().NotifyChannels
	names, err := s.dispatcher.Test(r.Context(), channels, req.ChannelID)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, notify.ErrChannelNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}
	writeSuccess(w, map[string]any{"sent": true, "channels": names})
}

type channelView struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Type      notify.Type `json:"type"`
	TypeLabel string      `json:"type_label"`
	Enabled   bool        `json:"enabled"`
	Summary   string      `json:"summary"`
}

func viewOf(ch notify.Channel) channelView {
	return channelView{
		ID:        ch.ID,
		Name:      ch.Name,
		Type:      ch.Type,
		TypeLabel: notify.TypeLabel(ch.Type),
		Enabled:   ch.Enabled,
		Summary:   notify.Summarize(ch),
	}
}

func (s *Server) handleListChannels(w http.ResponseWriter, _ *http.Request) {
	channels := s.store.Settings().NotifyChannels
	views := make([]channelView, 0, len(channels))
	for _, ch := range channels {
		views = append(views, viewOf(ch))
	}
	writeSuccess(w, views)
}

func (s *Server) handleSaveChannel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID      string      `json:"id"`
		Name    string      `json:"name"`
		Type    notify.Type `json:"type"`
		Enabled *bool       `json:"enabled"`
		notify.Form
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	current := s.store.Settings()
	editor := session.NewEditor(current.NotifyChannels)
	if req.ID != "" {
		if _, err := editor.Edit(req.ID); err != nil {
			writeError(w, http.StatusNotFound, "通知渠道不存在")
			return
		}
	}

	cfg, err := notify.BuildConfig(req.Type, req.Form)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	saved := editor.Save(req.Name, req.Type, enabled, cfg)

	current.NotifyChannels = editor.Payload()
	if err := s.store.UpdateSettings(current); err != nil {
		writeError(w, http.StatusInternalServerError, "保存失败")
		return
	}
	writeSuccess(w, viewOf(saved))
}

func (s *Server) handleDeleteChannel(w http.ResponseWriter, r *http.Request) {
	current := s.store.Settings()
	editor := session.NewEditor(current.NotifyChannels)
	editor.Remove(r.PathValue("id"))

	current.NotifyChannels = editor.Payload()
	if err := s.store.UpdateSettings(current); err != nil {
		writeError(w, http.StatusInternalServerError, "保存失败")
		return
	}
	writeSuccess(w, map[string]bool{"deleted": true})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	if s.logs == nil {
		writeSuccess(w, []string{})
		return
	}
	limit := schedule.ParseOptionalInt(r.URL.Query().Get("limit"), 200)
	writeSuccess(w, s.logs.Tail(limit))
}
