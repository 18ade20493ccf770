package student

import (
	"github.com/kelasi/kelasi/internal/student/repository"
	"github.com/kelasi/kelasi/internal/student/service"
	"go.uber.org/fx"
)

var Module = fx.Module("student.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
