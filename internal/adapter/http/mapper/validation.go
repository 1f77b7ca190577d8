package mapper

import (
	"taskmanager/internal/core/domain"
	"taskmanager/pkg/apierrors"
)

func ToFieldErrs(fields []domain.FieldError) []apierrors.FieldErr {
	items := make([]apierrors.FieldErr, 0, len(fields))
	for _, field := range fields {
		items = append(items, apierrors.NewBodyField(field.Field, field.Message, field.Value))
	}
	return items
}
