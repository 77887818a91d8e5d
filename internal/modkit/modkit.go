package modkit

import "doomscroll/internal/modkit/module"

// Module is the contract api.Mount drives: mount routes, expose ports, report a name
type Module = module.Module

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
