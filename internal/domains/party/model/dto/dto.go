package dto

import (
	"time"

	"github.com/google/uuid"

	"cohost/internal/domains/party/model"
	roomModel "cohost/internal/domains/room/model"
	"cohost/shared"
	"cohost/shared/constant"
	gDto "cohost/shared/dto"
	gModel "cohost/shared/model"
	"cohost/shared/timezone"
)

type CreatePartyRequest struct {
	Name          string     `json:"name"           validate:"required,max=100"`
	Size          int        `json:"size"           validate:"required,gt=0"`
	Phone         string     `json:"phone"          validate:"omitempty,max=30"`
	Notes         string     `json:"notes"          validate:"omitempty,max=500"`
	RoomKey       string     `json:"room_key"       validate:"omitempty,max=100"`
	QuotedMinutes *int       `json:"quoted_minutes" validate:"omitempty,min=0"`
	RequestedTime *time.Time `json:"requested_time" validate:"omitempty"`
	Handicap      bool       `json:"handicap"`
	Highchair     bool       `json:"highchair"`
	Window        bool       `json:"window"`
}

func (c *CreatePartyRequest) ToModel(user string) model.Party {
	roomKey := c.RoomKey
	if roomKey == "" {
		roomKey = roomModel.DefaultKey
	}

	return model.Party{
		ID:            uuid.NewString(),
		UserID:        user,
		Name:          c.Name,
		Size:          c.Size,
		Phone:         c.Phone,
		Notes:         c.Notes,
		RoomKey:       roomKey,
		State:         model.StateWaiting,
		QuotedMinutes: c.QuotedMinutes,
		RequestedTime: c.RequestedTime,
		Handicap:      c.Handicap,
		Highchair:     c.Highchair,
		Window:        c.Window,
		AddedAt:       timezone.Now(),
		Version:       1,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdatePartyRequest patches display fields only; state and timestamps are
// owned by transitions.
type UpdatePartyRequest struct {
	Name          string     `db:"name"           json:"name"           validate:"omitempty,max=100"`
	Size          *int       `db:"size"           json:"size"           validate:"omitempty,gt=0"`
	Phone         *string    `db:"phone"          json:"phone"          validate:"omitempty,max=30"`
	Notes         *string    `db:"notes"          json:"notes"          validate:"omitempty,max=500"`
	RoomKey       *string    `db:"room_key"       json:"room_key"       validate:"omitempty,max=100"`
	QuotedMinutes *int       `db:"quoted_minutes" json:"quoted_minutes" validate:"omitempty,min=0"`
	RequestedTime *time.Time `db:"requested_time" json:"requested_time" validate:"omitempty"`
	Handicap      *bool      `db:"handicap"       json:"handicap"       validate:"omitempty"`
	Highchair     *bool      `db:"highchair"      json:"highchair"      validate:"omitempty"`
	Window        *bool      `db:"window_seat"    json:"window"         validate:"omitempty"`
}

type TransitionPartyRequest struct {
	State        string `json:"state"         validate:"required"`
	TableID      *int   `json:"table_id"      validate:"omitempty,min=1"`
	AutoAssign   bool   `json:"auto_assign"`
	CancelReason string `json:"cancel_reason" validate:"omitempty,max=255"`
	Version      *int   `json:"version"       validate:"omitempty,min=1"`
}

type PurgeHistoryRequest struct {
	Password string `json:"password" validate:"required"`
}

type PartyResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Size          int     `json:"size"`
	Phone         string  `json:"phone"`
	Notes         string  `json:"notes"`
	RoomKey       string  `json:"room_key"`
	State         string  `json:"state"`
	TableID       *int    `json:"table_id"`
	QuotedMinutes *int    `json:"quoted_minutes"`
	RequestedTime *string `json:"requested_time"`
	Handicap      bool    `json:"handicap"`
	Highchair     bool    `json:"highchair"`
	Window        bool    `json:"window"`
	AddedAt       string  `json:"added_at"`
	SeatedAt      *string `json:"seated_at"`
	CompletedAt   *string `json:"completed_at"`
	CancelledAt   *string `json:"cancelled_at"`
	CancelReason  string  `json:"cancel_reason"`
	Version       int     `json:"version"`
	gDto.Metadata
}

func formatOptional(value *time.Time) *string {
	if value == nil {
		return nil
	}

	formatted := timezone.Format(*value, constant.DateFormat)

	return &formatted
}

func (p *PartyResponse) FromModel(mod model.Party) {
	p.ID = mod.ID
	p.Name = mod.Name
	p.Size = mod.Size
	p.Phone = mod.Phone
	p.Notes = mod.Notes
	p.RoomKey = mod.RoomKey
	p.State = mod.State
	p.TableID = mod.TableID
	p.QuotedMinutes = mod.QuotedMinutes
	p.RequestedTime = formatOptional(mod.RequestedTime)
	p.Handicap = mod.Handicap
	p.Highchair = mod.Highchair
	p.Window = mod.Window
	p.AddedAt = timezone.Format(mod.AddedAt, constant.DateFormat)
	p.SeatedAt = formatOptional(mod.SeatedAt)
	p.CompletedAt = formatOptional(mod.CompletedAt)
	p.CancelledAt = formatOptional(mod.CancelledAt)
	p.CancelReason = mod.CancelReason
	p.Version = mod.Version
	p.Metadata.FromModel(mod.Metadata)
}

type GetPartiesResponse struct {
	Parties   []PartyResponse `json:"parties"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetPartiesResponse) FromModels(models []model.Party, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Parties = make([]PartyResponse, len(models))
	for i, mod := range models {
		r.Parties[i].FromModel(mod)
	}
}

type PurgeHistoryResponse struct {
	Purged int64 `json:"purged"`
}

// PartyEvent is published to the waitlist events topic on every lifecycle
// change.
type PartyEvent struct {
	PartyID   string `json:"party_id"`
	AccountID string `json:"account_id"`
	RoomKey   string `json:"room_key"`
	State     string `json:"state"`
	TableID   *int   `json:"table_id"`
	At        string `json:"at"`
}

func NewPartyEvent(mod model.Party) PartyEvent {
	return PartyEvent{
		PartyID:   mod.ID,
		AccountID: mod.UserID,
		RoomKey:   mod.RoomKey,
		State:     mod.State,
		TableID:   mod.TableID,
		At:        timezone.Format(timezone.Now(), constant.DateFormat),
	}
}
