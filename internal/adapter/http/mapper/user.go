package mapper

import (
	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

func ToUserItem(user domain.User) dto.UserItem {
	return dto.UserItem{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: FormatTime(user.CreatedAt),
	}
}
