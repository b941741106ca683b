package meta

import "sync"

var (
	serviceName    string    //nolint:gochecknoglobals // process-wide service identity
	serviceVersion string    //nolint:gochecknoglobals // process-wide service identity
	once           sync.Once //nolint:gochecknoglobals // ensures SetServiceInfo is applied once
)

// SetServiceInfo sets the global service name and version.
// Only the first call has an effect.
func SetServiceInfo(name, version string) {
	once.Do(func() {
		serviceName = name
		serviceVersion = version
	})
}

// GetServiceName returns the global service name.
func GetServiceName() string {
	return serviceName
}

// GetServiceVersion returns the global service version.
func GetServiceVersion() string {
	return serviceVersion
}
