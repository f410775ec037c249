package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanMutate(t *testing.T) {
	tests := []struct {
		name         string
		actingUserID string
		authorID     string
		want         bool
	}{
		{"Автор может изменять свою запись", "user-1", "user-1", true},
		{"Чужой пользователь не может изменять запись", "user-2", "user-1", false},
		{"Неаутентифицированный пользователь всегда отклоняется", "", "user-1", false},
		{"Пустой автор не даёт доступа даже пустому пользователю", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMutate(tt.actingUserID, tt.authorID))
		})
	}
}
