package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"go-activity-planner/core/config"
	"go-activity-planner/core/entity"
	"go-activity-planner/core/errors"
	"go-activity-planner/core/logger"
	"go-activity-planner/core/queue"
	"go-activity-planner/core/utils"
	activityentity "go-activity-planner/modules/activity/entity"
	"go-activity-planner/modules/activity/repository"
)

type ActivityServiceInterface interface {
	CreateActivity(ctx context.Context, hostID uuid.UUID, req CreateActivityInput) (*activityentity.Activity, *errors.AppError)
	GetActivity(ctx context.Context, id uuid.UUID) (*activityentity.Activity, []activityentity.ActivityParticipant, *errors.AppError)
	GetActivityBySlug(ctx context.Context, slugValue string) (*activityentity.Activity, []activityentity.ActivityParticipant, *errors.AppError)
	ListActivities(ctx context.Context, userID uuid.UUID, pageNumber, pageSize int) (*entity.Pagination[activityentity.Activity], *errors.AppError)
	UpdateActivity(ctx context.Context, id, userID uuid.UUID, req UpdateActivityInput) (*activityentity.Activity, *errors.AppError)
	OverrideDeadline(ctx context.Context, id, userID uuid.UUID, deadline time.Time) (*activityentity.Activity, *errors.AppError)
	GetDeadlineStatus(ctx context.Context, id uuid.UUID, now time.Time) (*DeadlineStatus, *errors.AppError)
	FinalizeActivity(ctx context.Context, id, userID uuid.UUID, start, end *time.Time) (*activityentity.Activity, *errors.AppError)
	AddParticipant(ctx context.Context, activityID, userID uuid.UUID, calendarConnected bool) *errors.AppError
	MarkResponded(ctx context.Context, activityID, userID uuid.UUID, accepted bool) *errors.AppError
	SetCalendarConnected(ctx context.Context, userID uuid.UUID, connected bool) *errors.AppError
	IsResponseClosed(ctx context.Context, activityID uuid.UUID, now time.Time) (bool, *errors.AppError)
}

type CreateActivityInput struct {
	Title           string
	Description     string
	ActivityType    string
	TargetDate      *time.Time
	DurationMinutes int
	Participants    []uuid.UUID
}

type UpdateActivityInput struct {
	Title           string
	Description     string
	ActivityType    string
	TargetDate      *time.Time
	DurationMinutes int
}

// DeadlineStatus is the computed deadline state of one activity.
type DeadlineStatus struct {
	Deadline      time.Time
	SourceDate    *time.Time
	Overridden    bool
	Passed        bool
	RemainingText string
}

type ActivityService struct {
	repo   repository.ActivityRepositoryInterface
	policy *DeadlinePolicy
}

func NewActivityService(repo repository.ActivityRepositoryInterface) ActivityServiceInterface {
	return &ActivityService{
		repo:   repo,
		policy: NewDeadlinePolicy(),
	}
}

var validActivityTypes = map[string]bool{
	activityentity.ActivityTypeDining:  true,
	activityentity.ActivityTypeSports:  true,
	activityentity.ActivityTypeSocial:  true,
	activityentity.ActivityTypeOutdoor: true,
	activityentity.ActivityTypeCulture: true,
	activityentity.ActivityTypeOther:   true,
}

func (s *ActivityService) CreateActivity(ctx context.Context, hostID uuid.UUID, req CreateActivityInput) (*activityentity.Activity, *errors.AppError) {
	logger.Info("ActivitySvc:Create:Start", "host_id", hostID, "title", req.Title)

	if req.Title == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Tiêu đề hoạt động không được để trống", nil)
	}
	if req.DurationMinutes <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Thời lượng hoạt động phải lớn hơn 0", nil)
	}
	if !validActivityTypes[req.ActivityType] {
		req.ActivityType = activityentity.ActivityTypeOther
	}

	now := time.Now()
	deadline := s.policy.Compute(req.TargetDate, now)

	activity := &activityentity.Activity{
		HostID:           hostID,
		Title:            req.Title,
		Slug:             slug.Make(req.Title) + "-" + utils.GenerateRandomString(6),
		ActivityType:     req.ActivityType,
		TargetDate:       req.TargetDate,
		DurationMinutes:  req.DurationMinutes,
		Status:           activityentity.ActivityStatusPlanning,
		Timezone:         now.Location().String(),
		ResponseDeadline: &deadline.Value,
	}
	activity.ID = uuid.New()
	activity.CreatedAt = now
	activity.UpdatedAt = now
	if req.Description != "" {
		activity.Description = &req.Description
	}

	if err := s.repo.Create(ctx, activity); err != nil {
		logger.Error("ActivitySvc:Create:InsertFailed", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể tạo hoạt động", err)
	}

	host := &activityentity.ActivityParticipant{
		UserID:     hostID,
		ActivityID: activity.ID,
		Status:     activityentity.ParticipantStatusAccepted,
		CreatedAt:  now,
	}
	if err := s.repo.AddParticipant(ctx, host); err != nil {
		logger.Error("ActivitySvc:Create:AddHostFailed", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể thêm người tổ chức vào hoạt động", err)
	}

	for _, participantID := range req.Participants {
		if participantID == hostID {
			continue
		}
		p := &activityentity.ActivityParticipant{
			UserID:     participantID,
			ActivityID: activity.ID,
			Status:     activityentity.ParticipantStatusPending,
			CreatedAt:  now,
		}
		if err := s.repo.AddParticipant(ctx, p); err != nil {
			logger.Error("ActivitySvc:Create:AddParticipantFailed", "user_id", participantID, "error", err)
			return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể thêm người tham gia", err)
		}
	}

	if err := queue.EnqueueDeadlineReminder(activity.ID, deadline.Value, reminderLeadHours()); err != nil {
		// reminder is best-effort, the activity itself is already persisted
		logger.Warn("ActivitySvc:Create:EnqueueReminderFailed", "activity_id", activity.ID, "error", err)
	}

	logger.Info("ActivitySvc:Create:Success", "activity_id", activity.ID, "deadline", deadline.Value)
	return activity, nil
}

func (s *ActivityService) GetActivity(ctx context.Context, id uuid.UUID) (*activityentity.Activity, []activityentity.ActivityParticipant, *errors.AppError) {
	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn hoạt động", err)
	}
	if activity == nil {
		return nil, nil, errors.NewAppError(errors.ErrNotFound, "Không tìm thấy hoạt động", nil)
	}

	participants, err := s.repo.GetParticipants(ctx, id)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn người tham gia", err)
	}
	return activity, participants, nil
}

func (s *ActivityService) GetActivityBySlug(ctx context.Context, slugValue string) (*activityentity.Activity, []activityentity.ActivityParticipant, *errors.AppError) {
	activity, err := s.repo.GetBySlug(ctx, slugValue)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn hoạt động", err)
	}
	if activity == nil {
		return nil, nil, errors.NewAppError(errors.ErrNotFound, "Không tìm thấy hoạt động", nil)
	}

	participants, err := s.repo.GetParticipants(ctx, activity.ID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn người tham gia", err)
	}
	return activity, participants, nil
}

func (s *ActivityService) ListActivities(ctx context.Context, userID uuid.UUID, pageNumber, pageSize int) (*entity.Pagination[activityentity.Activity], *errors.AppError) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	activities, total, err := s.repo.ListByUser(ctx, userID, pageSize, (pageNumber-1)*pageSize)
	if err != nil {
		logger.Error("ActivitySvc:List:QueryFailed", "user_id", userID, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn danh sách hoạt động", err)
	}

	return &entity.Pagination[activityentity.Activity]{
		Items:      activities,
		TotalItems: total,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}, nil
}

func (s *ActivityService) UpdateActivity(ctx context.Context, id, userID uuid.UUID, req UpdateActivityInput) (*activityentity.Activity, *errors.AppError) {
	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn hoạt động", err)
	}
	if activity == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Không tìm thấy hoạt động", nil)
	}
	if activity.HostID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Chỉ người tổ chức mới được chỉnh sửa hoạt động", nil)
	}
	if activity.Status != activityentity.ActivityStatusPlanning {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Hoạt động đã chốt, không thể chỉnh sửa", nil)
	}

	now := time.Now()
	targetChanged := !equalTimePtr(activity.TargetDate, req.TargetDate)

	if req.Title != "" {
		activity.Title = req.Title
	}
	if req.Description != "" {
		activity.Description = &req.Description
	}
	if validActivityTypes[req.ActivityType] {
		activity.ActivityType = req.ActivityType
	}
	if req.DurationMinutes > 0 {
		activity.DurationMinutes = req.DurationMinutes
	}
	activity.TargetDate = req.TargetDate
	activity.UpdatedAt = now

	if err := s.repo.Update(ctx, activity); err != nil {
		logger.Error("ActivitySvc:Update:Failed", "activity_id", id, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể cập nhật hoạt động", err)
	}

	// a manual deadline survives target-date edits until the host clears it
	if targetChanged && !activity.DeadlineOverridden {
		deadline := s.policy.Compute(req.TargetDate, now)
		if err := s.repo.UpdateDeadline(ctx, id, &deadline, false); err != nil {
			logger.Error("ActivitySvc:Update:DeadlineFailed", "activity_id", id, "error", err)
			return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể cập nhật hạn phản hồi", err)
		}
		activity.ResponseDeadline = &deadline.Value

		if err := queue.EnqueueDeadlineReminder(id, deadline.Value, reminderLeadHours()); err != nil {
			logger.Warn("ActivitySvc:Update:EnqueueReminderFailed", "activity_id", id, "error", err)
		}
	}

	logger.Info("ActivitySvc:Update:Success", "activity_id", id)
	return activity, nil
}

func (s *ActivityService) OverrideDeadline(ctx context.Context, id, userID uuid.UUID, deadline time.Time) (*activityentity.Activity, *errors.AppError) {
	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn hoạt động", err)
	}
	if activity == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Không tìm thấy hoạt động", nil)
	}
	if activity.HostID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Chỉ người tổ chức mới được đổi hạn phản hồi", nil)
	}

	overridden, policyErr := s.policy.Override(deadline, activity.TargetDate, time.Now())
	if policyErr != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Hạn phản hồi không hợp lệ: phải nằm trong tương lai", policyErr)
	}

	if err := s.repo.UpdateDeadline(ctx, id, &overridden, true); err != nil {
		logger.Error("ActivitySvc:OverrideDeadline:Failed", "activity_id", id, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể cập nhật hạn phản hồi", err)
	}

	activity.ResponseDeadline = &overridden.Value
	activity.DeadlineOverridden = true

	if err := queue.EnqueueDeadlineReminder(id, overridden.Value, reminderLeadHours()); err != nil {
		logger.Warn("ActivitySvc:OverrideDeadline:EnqueueReminderFailed", "activity_id", id, "error", err)
	}

	logger.Info("ActivitySvc:OverrideDeadline:Success", "activity_id", id, "deadline", overridden.Value)
	return activity, nil
}

func (s *ActivityService) GetDeadlineStatus(ctx context.Context, id uuid.UUID, now time.Time) (*DeadlineStatus, *errors.AppError) {
	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn hoạt động", err)
	}
	if activity == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Không tìm thấy hoạt động", nil)
	}

	var deadline activityentity.Deadline
	if activity.ResponseDeadline != nil {
		deadline = activityentity.Deadline{Value: *activity.ResponseDeadline, SourceActivityDate: activity.TargetDate}
	} else {
		deadline = s.policy.Compute(activity.TargetDate, now)
	}

	return &DeadlineStatus{
		Deadline:      deadline.Value,
		SourceDate:    activity.TargetDate,
		Overridden:    activity.DeadlineOverridden,
		Passed:        IsPassed(deadline, now),
		RemainingText: RemainingText(deadline, now),
	}, nil
}

func (s *ActivityService) FinalizeActivity(ctx context.Context, id, userID uuid.UUID, start, end *time.Time) (*activityentity.Activity, *errors.AppError) {
	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn hoạt động", err)
	}
	if activity == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Không tìm thấy hoạt động", nil)
	}
	if activity.HostID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Chỉ người tổ chức mới được chốt hoạt động", nil)
	}
	if activity.Status == activityentity.ActivityStatusFinalized {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Hoạt động đã được chốt trước đó", nil)
	}
	if start != nil && end != nil && !start.Before(*end) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Thời gian bắt đầu phải trước thời gian kết thúc", nil)
	}

	closed, appErr := s.IsResponseClosed(ctx, id, time.Now())
	if appErr != nil {
		return nil, appErr
	}
	if !closed {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Chưa thể chốt: hạn phản hồi chưa qua và vẫn còn người chưa trả lời", nil)
	}

	startVal := nullTime(start)
	endVal := nullTime(end)
	if err := s.repo.Finalize(ctx, id, startVal, endVal); err != nil {
		logger.Error("ActivitySvc:Finalize:Failed", "activity_id", id, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "Không thể chốt hoạt động", err)
	}

	activity.Status = activityentity.ActivityStatusFinalized
	activity.StartDate = start
	activity.EndDate = end

	logger.Info("ActivitySvc:Finalize:Success", "activity_id", id)
	return activity, nil
}

func (s *ActivityService) AddParticipant(ctx context.Context, activityID, userID uuid.UUID, calendarConnected bool) *errors.AppError {
	p := &activityentity.ActivityParticipant{
		UserID:               userID,
		ActivityID:           activityID,
		Status:               activityentity.ParticipantStatusPending,
		HasCalendarConnected: calendarConnected,
		CreatedAt:            time.Now(),
	}
	if err := s.repo.AddParticipant(ctx, p); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Không thể thêm người tham gia", err)
	}
	return nil
}

func (s *ActivityService) MarkResponded(ctx context.Context, activityID, userID uuid.UUID, accepted bool) *errors.AppError {
	p, err := s.repo.GetParticipant(ctx, activityID, userID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn người tham gia", err)
	}
	if p == nil {
		return errors.NewAppError(errors.ErrNotFound, "Bạn không nằm trong danh sách tham gia hoạt động này", nil)
	}

	status := activityentity.ParticipantStatusDeclined
	if accepted {
		status = activityentity.ParticipantStatusAccepted
	}
	if err := s.repo.UpdateParticipantStatus(ctx, activityID, userID, status); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Không thể cập nhật phản hồi", err)
	}
	return nil
}

// SetCalendarConnected propagates a calendar connect or disconnect into
// every participant row of the user, keeping group integration counts
// accurate for activities created before the connection changed.
func (s *ActivityService) SetCalendarConnected(ctx context.Context, userID uuid.UUID, connected bool) *errors.AppError {
	if err := s.repo.SetParticipantCalendarConnected(ctx, userID, connected); err != nil {
		logger.Error("ActivitySvc:SetCalendarConnected:Failed", "user_id", userID, "error", err)
		return errors.NewAppError(errors.ErrInternalServer, "Không thể cập nhật trạng thái kết nối lịch", err)
	}
	return nil
}

// IsResponseClosed reports whether the collection window is over: the
// deadline has passed, or every participant has already answered.
func (s *ActivityService) IsResponseClosed(ctx context.Context, activityID uuid.UUID, now time.Time) (bool, *errors.AppError) {
	status, appErr := s.GetDeadlineStatus(ctx, activityID, now)
	if appErr != nil {
		return false, appErr
	}
	if status.Passed {
		return true, nil
	}

	participants, err := s.repo.GetParticipants(ctx, activityID)
	if err != nil {
		return false, errors.NewAppError(errors.ErrInternalServer, "Không thể truy vấn người tham gia", err)
	}
	for _, p := range participants {
		if p.Status == activityentity.ParticipantStatusPending {
			return false, nil
		}
	}
	return true, nil
}

func reminderLeadHours() int {
	if cfg, ok := config.GetSafe(); ok && cfg.Engine.ReminderLeadHours > 0 {
		return cfg.Engine.ReminderLeadHours
	}
	return 6
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
