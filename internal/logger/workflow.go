package logger

import (
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
)

// workflowFields extracts identifying fields from a workflow context so log
// lines from replays and continued runs stay correlated
func workflowFields(ctx workflow.Context) []zap.Field {
	info := workflow.GetInfo(ctx)
	if info == nil {
		return nil
	}

	return []zap.Field{
		zap.String("workflowType", info.WorkflowType.Name),
		zap.String("workflowID", info.WorkflowExecution.ID),
		zap.String("runID", info.WorkflowExecution.RunID),
	}
}

// InfoWf logs an info message with workflow identity fields
func InfoWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	Info(msg, append(workflowFields(ctx), fields...)...)
}

// ErrorWf logs an error with workflow identity fields
func ErrorWf(ctx workflow.Context, err error, fields ...zap.Field) {
	Error(err, append(workflowFields(ctx), fields...)...)
}

// WarnWf logs a warning with workflow identity fields
func WarnWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	Warn(msg, append(workflowFields(ctx), fields...)...)
}

// DebugWf logs a debug message with workflow identity fields
func DebugWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	Debug(msg, append(workflowFields(ctx), fields...)...)
}
