package web

import (
	"github.com/go-drift/uicore/pkg/callback"
	"github.com/go-drift/uicore/pkg/errors"
)

// DispatchEvent is the entry point the host runtime calls when a DOM
// listener fires. The handle stays registered afterwards. A panic in the
// callback is passed to the panic hook, if one is installed, and then
// continues to the host.
func DispatchEvent(h callback.Handle) {
	defer errors.ReportAndRepanic("web.DispatchEvent")
	callback.Dispatch(h)
}

// ConsoleHook returns a panic hook that writes panics to a host console
// function, in the form a browser console shows them.
func ConsoleHook(log func(msg string)) func(*errors.PanicError) {
	return func(p *errors.PanicError) {
		log(p.Error())
	}
}
