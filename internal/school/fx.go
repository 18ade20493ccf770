package school

import (
	"github.com/kelasi/kelasi/internal/school/repository"
	"github.com/kelasi/kelasi/internal/school/service"
	"go.uber.org/fx"
)

var Module = fx.Module("school.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
