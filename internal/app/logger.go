package app

import "github.com/heroiclabs/nakama-common/runtime"

// discardLogger is used when the service is built without a logger.
type discardLogger struct{}

func (discardLogger) Debug(string, ...interface{}) {}
func (discardLogger) Info(string, ...interface{})  {}
func (discardLogger) Warn(string, ...interface{})  {}
func (discardLogger) Error(string, ...interface{}) {}
func (discardLogger) WithField(string, interface{}) runtime.Logger {
	return discardLogger{}
}
func (discardLogger) WithFields(map[string]interface{}) runtime.Logger {
	return discardLogger{}
}
func (discardLogger) Fields() map[string]interface{} {
	return nil
}
