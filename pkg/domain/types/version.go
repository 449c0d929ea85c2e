package types

// Version is overwritten at build time with -ldflags "-X".
var Version = "dev"

// ServiceName is used in health responses and the Sentry release tag
const ServiceName = "relmon"
