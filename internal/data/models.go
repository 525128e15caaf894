package data

import (
	"database/sql"
	"errors"

	"github.com/redis/go-redis/v9"
)

var ErrRecordNotFound = errors.New("record not found")
var ErrEditConflict = errors.New("edit conflict")

type Models struct {
	Users       UserModel
	Tokens      TokenModel
	Permissions PermissionModel
	History     HistoryModel
	Rosters     RosterModel
}

func NewModels(initDb *sql.DB, rdb *redis.Client) Models {
	return Models{
		Users:       UserModel{db: initDb},
		Tokens:      TokenModel{db: initDb},
		Permissions: PermissionModel{db: initDb},
		History:     HistoryModel{db: initDb},
		Rosters:     RosterModel{rdb: rdb},
	}
}
