package handlers

import (
	"github.com/xavierca1/anvaya-web/internal/infra/http/middleware"
	"github.com/xavierca1/anvaya-web/internal/infra/http/web"
)

// Notice kinds, also used as the toast CSS suffix.
const (
	NoticeInfo    = "info"
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notices collects the toasts raised while handling one request.
type Notices struct {
	items []web.Notice
}

func (n *Notices) Info(msg string)    { n.add(NoticeInfo, msg) }
func (n *Notices) Success(msg string) { n.add(NoticeSuccess, msg) }
func (n *Notices) Error(msg string)   { n.add(NoticeError, msg) }

func (n *Notices) Items() []web.Notice {
	return n.items
}

func (n *Notices) add(kind, msg string) {
	middleware.RecordNotification(kind)
	n.items = append(n.items, web.Notice{Kind: kind, Message: msg})
}
