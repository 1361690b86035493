package scheduler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
)

const TaskDatasetImport = "dataset.import"

type DatasetImportPayload struct {
	Source string `json:"source"`
}

func NewDatasetImportTask(payload DatasetImportPayload) (*asynq.Task, error) {
	if strings.TrimSpace(payload.Source) == "" {
		return nil, fmt.Errorf("dataset import: source is required")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDatasetImport, data), nil
}

func ParseDatasetImportPayload(task *asynq.Task) (DatasetImportPayload, error) {
	var payload DatasetImportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DatasetImportPayload{}, err
	}
	if strings.TrimSpace(payload.Source) == "" {
		return DatasetImportPayload{}, fmt.Errorf("dataset import: source is required")
	}
	return payload, nil
}
