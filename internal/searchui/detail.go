package searchui

import (
	"context"

	"skrytki/platform/logger"
)

// DetailService fetches every skrytka of the entity an address belongs to.
type DetailService interface {
	Details(ctx context.Context, addressID string) ([]string, error)
}

// DetailController loads the skrytka list shown in the detail view.
type DetailController struct {
	svc    DetailService
	loader *loader[string]
}

func NewDetailController(svc DetailService, body Surface, notifier Notifier, log *logger.Logger) *DetailController {
	return &DetailController{
		svc:    svc,
		loader: newLoader[string]("detail", ListRenderer{}, body, notifier, log),
	}
}

// OnOpenDetail fetches the list for addressID and replaces the detail body
// with it, one code per line.
func (c *DetailController) OnOpenDetail(addressID string) {
	c.loader.load(func(ctx context.Context) ([]string, error) {
		return c.svc.Details(ctx, addressID)
	}, outcome{failed: MsgDetailFailed})
}

// Wait blocks until every issued load has completed.
func (c *DetailController) Wait() {
	c.loader.wait()
}

// Close cancels in-flight loads.
func (c *DetailController) Close() {
	c.loader.close()
}
