package contracts

import (
	"github.com/julienschmidt/httprouter"
)

// Handler is implemented by every domain handler that registers routes
// on the shared router.
type Handler interface {
	RegisterRoutes(router *httprouter.Router)
}

// Compose bundles several handlers behind a single Handler.
func Compose(handlers ...Handler) Handler {
	return composite(handlers)
}

type composite []Handler

func (c composite) RegisterRoutes(router *httprouter.Router) {
	for _, h := range c {
		h.RegisterRoutes(router)
	}
}
