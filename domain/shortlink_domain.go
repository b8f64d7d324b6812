package domain

import "errors"

const (
	MinShortHashLength = 8
	MaxShortHashLength = 10
	MaxShortURLLength  = 256
)

var (
	ErrShortLinkNotFound  = errors.New("short link not found")
	ErrShortLinkExhausted = errors.New("could not generate a unique short link")
	ErrShortLinkTooLong   = errors.New("url is too long to shorten")
)
