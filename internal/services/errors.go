package services

import "errors"

var ErrInvalidFileType = errors.New("invalid file extension")
