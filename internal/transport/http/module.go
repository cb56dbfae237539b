package http

import (
	"go.uber.org/fx"

	customertransport "github.com/Additional-Code/padoca/internal/transport/http/customer"
	ordertransport "github.com/Additional-Code/padoca/internal/transport/http/order"
	producttransport "github.com/Additional-Code/padoca/internal/transport/http/product"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	customertransport.Module,
	producttransport.Module,
	ordertransport.Module,
)
