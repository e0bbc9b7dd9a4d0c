package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"cohost/internal/domains/room/model"
	"cohost/shared"
	gDto "cohost/shared/dto"
	gModel "cohost/shared/model"
	"cohost/shared/timezone"
)

type TableRequest struct {
	ID        int    `json:"id"        validate:"required,min=1"`
	Section   string `json:"section"   validate:"omitempty,max=50"`
	Number    int    `json:"number"    validate:"omitempty,min=0"`
	Capacity  int    `json:"capacity"  validate:"required,min=1"`
	X         int    `json:"x"         validate:"min=0"`
	Y         int    `json:"y"         validate:"min=0"`
	Shape     string `json:"shape"     validate:"required,oneof=square circle vertical horizontal"`
	Handicap  bool   `json:"handicap"`
	Highchair bool   `json:"highchair"`
	Window    bool   `json:"window"`
	State     string `json:"state"     validate:"omitempty,oneof=ready not-ready"`
}

func (t *TableRequest) ToModel() model.Table {
	state := t.State
	if state == "" {
		state = model.TableStateReady
	}

	return model.Table{
		ID:        t.ID,
		Section:   t.Section,
		Number:    t.Number,
		Capacity:  t.Capacity,
		X:         t.X,
		Y:         t.Y,
		Shape:     t.Shape,
		Handicap:  t.Handicap,
		Highchair: t.Highchair,
		Window:    t.Window,
		State:     state,
	}
}

func toTables(requests []TableRequest) model.Tables {
	tables := make(model.Tables, len(requests))
	for i := range requests {
		tables[i] = requests[i].ToModel()
	}

	return tables
}

type CreateRoomRequest struct {
	Name      string                `json:"name"   validate:"required,max=100"`
	Tables    []TableRequest        `json:"tables" validate:"omitempty,dive"`
	Image     *multipart.FileHeader `json:"image"  validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
}

func (c *CreateRoomRequest) ToModel(user, imageURL string) model.Room {
	return model.Room{
		ID:     uuid.NewString(),
		UserID: user,
		Name:   c.Name,
		Key:    shared.Slugify(c.Name),
		Tables: toTables(c.Tables),
		Image:  imageURL,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name      string                `db:"name" json:"name"   validate:"omitempty,max=100"`
	Tables    []TableRequest        `json:"tables"           validate:"omitempty,dive"`
	Image     *multipart.FileHeader `json:"image"            validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
}

func (u *UpdateRoomRequest) ToTables() model.Tables {
	return toTables(u.Tables)
}

type TableResponse struct {
	ID        int    `json:"id"`
	Section   string `json:"section"`
	Number    int    `json:"number"`
	Capacity  int    `json:"capacity"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Shape     string `json:"shape"`
	Handicap  bool   `json:"handicap"`
	Highchair bool   `json:"highchair"`
	Window    bool   `json:"window"`
	State     string `json:"state"`
}

type RoomResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Key    string          `json:"key"`
	Tables []TableResponse `json:"tables"`
	Image  string          `json:"image"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(mod model.Room) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Key = mod.Key
	r.Image = mod.Image

	r.Tables = make([]TableResponse, len(mod.Tables))
	for i, table := range mod.Tables {
		r.Tables[i] = TableResponse(table)
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type RoomKeysResponse struct {
	Keys []string `json:"keys"`
}
