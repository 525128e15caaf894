package data

import (
	"context"
	json2 "encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"CourtsideApi/internal/engine"
	"CourtsideApi/internal/validator"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RosterTemplate is a saved lineup a coach can load into a new game.
type RosterTemplate struct {
	ID      string               `json:"id"`
	Name    string               `json:"name"`
	Color   string               `json:"color,omitempty"`
	Players []engine.RosterEntry `json:"players"`
}

// RosterModel keeps templates in redis, one hash per user with a field per
// template.
type RosterModel struct {
	rdb *redis.Client
}

func rosterKey(userID int64) string {
	return fmt.Sprintf("rosters:%d", userID)
}

func (m *RosterModel) Insert(userID int64, template *RosterTemplate) error {
	if template.ID == "" {
		template.ID = uuid.NewString()
	}

	bytes, err := json2.Marshal(template)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return m.rdb.HSet(ctx, rosterKey(userID), template.ID, bytes).Err()
}

func (m *RosterModel) Get(userID int64, id string) (*RosterTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	bytes, err := m.rdb.HGet(ctx, rosterKey(userID), id).Bytes()
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	var template RosterTemplate
	if err := json2.Unmarshal(bytes, &template); err != nil {
		return nil, err
	}

	return &template, nil
}

// GetAll returns the user's templates sorted by name.
func (m *RosterModel) GetAll(userID int64) ([]*RosterTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	fields, err := m.rdb.HGetAll(ctx, rosterKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	templates := make([]*RosterTemplate, 0, len(fields))
	for _, value := range fields {
		var template RosterTemplate
		if err := json2.Unmarshal([]byte(value), &template); err != nil {
			return nil, err
		}
		templates = append(templates, &template)
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})

	return templates, nil
}

func (m *RosterModel) Delete(userID int64, id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	removed, err := m.rdb.HDel(ctx, rosterKey(userID), id).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// ImportAll replaces nothing until the whole payload validates: a malformed
// import is rejected outright and existing templates are untouched.
func (m *RosterModel) ImportAll(userID int64, payload []byte) ([]*RosterTemplate, error) {
	var templates []*RosterTemplate
	if err := json2.Unmarshal(payload, &templates); err != nil {
		return nil, NewModelValidationErr("file", "must be a JSON array of rosters")
	}

	v := validator.New()
	for i, template := range templates {
		ValidateRosterTemplate(v, template)
		if !v.Valid() {
			modelErr := NewModelValidationErr("file", fmt.Sprintf("roster at index %d is invalid", i))
			for key, value := range v.Errors {
				modelErr.AddError(key, value)
			}
			return nil, modelErr
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	pipe := m.rdb.Pipeline()
	for _, template := range templates {
		if template.ID == "" {
			template.ID = uuid.NewString()
		}
		bytes, err := json2.Marshal(template)
		if err != nil {
			return nil, err
		}
		pipe.HSet(ctx, rosterKey(userID), template.ID, bytes)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return templates, nil
}

func ValidateRosterTemplate(v *validator.Validator, template *RosterTemplate) {
	v.Check(template.Name != "", "name", "must be provided")
	v.Check(len(template.Name) <= 100, "name", "must be fewer than 100 characters")
	v.Check(len(template.Players) > 0, "players", "must contain at least one player")
	v.Check(len(template.Players) <= 15, "players", "must contain no more than 15 players")

	for _, player := range template.Players {
		v.Check(player.Name != "", "players", "every player must have a name")
		v.Check(player.Number >= 0 && player.Number <= 99, "players",
			"every player number must be between 0 and 99")
	}
}
