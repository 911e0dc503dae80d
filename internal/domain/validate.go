package domain

import "github.com/go-playground/validator/v10"

// validator 实例缓存了结構体元数据，并发安全
var validate = validator.New(validator.WithRequiredStructEnabled())
