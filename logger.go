package main

import "go.uber.org/zap"

var logger = newLogger()

func newLogger() *zap.SugaredLogger {
	l, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}
