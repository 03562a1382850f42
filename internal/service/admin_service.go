package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/eventhub/internal/domain"
	"github.com/spec-kit/eventhub/internal/events"
	"github.com/spec-kit/eventhub/internal/repository"
)

// AdminPageSize is the number of rows per dashboard table page.
const AdminPageSize = 10

const (
	RegistrationsCSVName = "registrations_data.csv"
	LoginsCSVName        = "logins_data.csv"
)

// DashboardStats are the figures shown on the admin overview cards.
type DashboardStats struct {
	TotalRegistrations int     `json:"totalRegistrations"`
	ActiveUsers        int     `json:"activeUsers"`
	BlockedUsers       int     `json:"blockedUsers"`
	TotalLogins        int     `json:"totalLogins"`
	UniqueLogins       int     `json:"uniqueLogins"`
	TodayLogins        int     `json:"todayLogins"`
	FeedbackCount      int     `json:"feedbackCount"`
	AverageRating      float64 `json:"averageRating"`
}

// AdminService backs the admin dashboard. All figures derive from the
// repositories; nothing is generated.
type AdminService struct {
	registrations repository.RegistrationRepository
	feedback      repository.FeedbackRepository
	logins        repository.LoginLogRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	now           func() time.Time
}

// AdminDependencies bundles repositories for the admin service.
type AdminDependencies struct {
	RegistrationRepo repository.RegistrationRepository
	FeedbackRepo     repository.FeedbackRepository
	LoginLogRepo     repository.LoginLogRepository
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
	Now              func() time.Time
}

// NewAdminService constructs the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &AdminService{
		registrations: deps.RegistrationRepo,
		feedback:      deps.FeedbackRepo,
		logins:        deps.LoginLogRepo,
		dispatcher:    deps.Dispatcher,
		logger:        deps.Logger,
		now:           now,
	}
}

// Stats computes the overview cards.
func (s *AdminService) Stats(ctx context.Context) (DashboardStats, error) {
	regs, err := s.registrations.List(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	logs, err := s.logins.List(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	feedback, err := s.feedback.List(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{TotalRegistrations: len(regs), FeedbackCount: len(feedback)}
	for _, reg := range regs {
		if reg.Status == domain.StatusBlocked {
			stats.BlockedUsers++
		} else {
			stats.ActiveUsers++
		}
	}

	y, m, d := s.now().Date()
	unique := map[string]struct{}{}
	for _, entry := range logs {
		if entry.Activity != domain.ActivityPortal {
			continue
		}
		stats.TotalLogins++
		unique[entry.Email] = struct{}{}
		ly, lm, ld := entry.LoginTime.UTC().Date()
		if ly == y && lm == m && ld == d {
			stats.TodayLogins++
		}
	}
	stats.UniqueLogins = len(unique)

	if len(feedback) > 0 {
		sum := 0
		for _, fb := range feedback {
			sum += fb.Rating
		}
		stats.AverageRating = repository.RoundRating(float64(sum) / float64(len(feedback)))
	}
	return stats, nil
}

// Registrations returns one filtered page of the registration table.
func (s *AdminService) Registrations(ctx context.Context, q repository.RegistrationQuery, page int) (repository.Page[domain.Registration], error) {
	regs, err := s.registrations.List(ctx)
	if err != nil {
		return repository.Page[domain.Registration]{}, err
	}
	return repository.Paginate(repository.FilterRegistrations(regs, q), page, AdminPageSize), nil
}

// LoginLogs returns one filtered page of the activity log, newest first.
func (s *AdminService) LoginLogs(ctx context.Context, search string, page int) (repository.Page[domain.LoginLog], error) {
	logs, err := s.filteredLogs(ctx, search)
	if err != nil {
		return repository.Page[domain.LoginLog]{}, err
	}
	return repository.Paginate(logs, page, AdminPageSize), nil
}

func (s *AdminService) filteredLogs(ctx context.Context, search string) ([]domain.LoginLog, error) {
	logs, err := s.logins.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := repository.FilterLoginLogs(logs, search)
	for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	}
	return filtered, nil
}

// SetStatus changes a registration's status. Unknown ids are reported as
// not found.
func (s *AdminService) SetStatus(ctx context.Context, id int64, status domain.RegistrationStatus) (*domain.Registration, error) {
	current, err := s.registrations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.registrations.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	old := current.Status
	current.Status = status
	if old != status {
		s.publishStatusChange(ctx, id, old, status)
	}
	return current, nil
}

// ToggleStatus flips a registration between registered and blocked.
func (s *AdminService) ToggleStatus(ctx context.Context, id int64) (*domain.Registration, error) {
	updated, err := s.registrations.ToggleStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publishStatusChange(ctx, id, updated.Status.Toggled(), updated.Status)
	return updated, nil
}

func (s *AdminService) publishStatusChange(ctx context.Context, id int64, old, status domain.RegistrationStatus) {
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventRegistrationStatusChanged,
		events.Actor{Role: domain.RoleAdmin},
		events.RegistrationStatusChangedPayload{RegistrationID: id, OldStatus: old, NewStatus: status}))
}

// Feedback lists every submission, oldest first.
func (s *AdminService) Feedback(ctx context.Context) ([]domain.Feedback, error) {
	return s.feedback.List(ctx)
}

// RegistrationsCSV exports every registration matching q.
func (s *AdminService) RegistrationsCSV(ctx context.Context, q repository.RegistrationQuery) ([]byte, error) {
	regs, err := s.registrations.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"ID", "Name", "Email", "Phone", "Gender", "Ticket Type", "Status", "Registered", "Last Login"}}
	for _, reg := range repository.FilterRegistrations(regs, q) {
		lastLogin := ""
		if reg.LastLogin != nil {
			lastLogin = reg.LastLogin.Format(time.RFC3339)
		}
		rows = append(rows, []string{
			strconv.FormatInt(reg.ID, 10),
			reg.Name,
			reg.Email,
			reg.Phone,
			string(reg.Gender),
			reg.TicketType.Label(),
			string(reg.Status),
			reg.CreatedAt.Format(time.RFC3339),
			lastLogin,
		})
	}
	return writeCSV(rows)
}

// LoginLogsCSV exports the activity log matching search.
func (s *AdminService) LoginLogsCSV(ctx context.Context, search string) ([]byte, error) {
	logs, err := s.filteredLogs(ctx, search)
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"Email", "Login Time", "Device", "IP Address", "Activity"}}
	for _, entry := range logs {
		rows = append(rows, []string{
			entry.Email,
			entry.LoginTime.Format(time.RFC3339),
			entry.Device,
			entry.IP,
			string(entry.Activity),
		})
	}
	return writeCSV(rows)
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
