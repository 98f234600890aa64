package finetune

// FineTune is a fine-tuning job as reported by the API.
type FineTune struct {
	ID              string          `json:"id"`
	Object          string          `json:"object"`
	Model           string          `json:"model"`
	CreatedAt       int64           `json:"created_at"`
	Events          []FineTuneEvent `json:"events,omitempty"`
	FineTunedModel  string          `json:"fine_tuned_model,omitempty"`
	Hyperparams     *Hyperparams    `json:"hyperparams,omitempty"`
	OrganizationID  string          `json:"organization_id,omitempty"`
	ResultFiles     []File          `json:"result_files,omitempty"`
	Status          string          `json:"status"`
	ValidationFiles []File          `json:"validation_files,omitempty"`
	TrainingFiles   []File          `json:"training_files,omitempty"`
	UpdatedAt       int64           `json:"updated_at"`
}

// Job status values reported by the API.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusCancelled = "cancelled"
	StatusFailed    = "failed"
)

// FineTuneEvent is a timestamped status record emitted while a job
// runs.
type FineTuneEvent struct {
	Object    string `json:"object"`
	CreatedAt int64  `json:"created_at"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

// Hyperparams are the training hyperparameters attached to a job.
type Hyperparams struct {
	BatchSize              int     `json:"batch_size,omitempty"`
	LearningRateMultiplier float64 `json:"learning_rate_multiplier,omitempty"`
	NEpochs                int     `json:"n_epochs,omitempty"`
	PromptLossWeight       float64 `json:"prompt_loss_weight,omitempty"`
}

// FineTuneList is the envelope for fine-tune listings.
type FineTuneList struct {
	Object string     `json:"object"`
	Data   []FineTune `json:"data"`
}

// FineTuneEventList is the envelope for fine-tune event listings.
type FineTuneEventList struct {
	Object string          `json:"object"`
	Data   []FineTuneEvent `json:"data"`
}

// CreateFineTuneRequest is the payload for creating a fine-tune job.
// TrainingFile is the ID of an uploaded file; everything else is
// optional and defaulted server-side.
type CreateFineTuneRequest struct {
	TrainingFile                 string    `json:"training_file"`
	ValidationFile               string    `json:"validation_file,omitempty"`
	Model                        string    `json:"model,omitempty"`
	NEpochs                      int       `json:"n_epochs,omitempty"`
	BatchSize                    int       `json:"batch_size,omitempty"`
	LearningRateMultiplier       float64   `json:"learning_rate_multiplier,omitempty"`
	PromptLossWeight             *float64  `json:"prompt_loss_weight,omitempty"`
	ComputeClassificationMetrics bool      `json:"compute_classification_metrics,omitempty"`
	ClassificationNClasses       int       `json:"classification_n_classes,omitempty"`
	ClassificationPositiveClass  string    `json:"classification_positive_class,omitempty"`
	ClassificationBetas          []float64 `json:"classification_betas,omitempty"`
	Suffix                       string    `json:"suffix,omitempty"`
}

// File is an uploaded file visible to the API.
type File struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Bytes     int64  `json:"bytes"`
	CreatedAt int64  `json:"created_at"`
	Filename  string `json:"filename"`
	Purpose   string `json:"purpose"`
	Status    string `json:"status,omitempty"`
}

// FileList is the envelope for file listings.
type FileList struct {
	Object string `json:"object"`
	Data   []File `json:"data"`
}

// Model is a model visible to the API, base or fine-tuned.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// ModelList is the envelope for model listings.
type ModelList struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// DeleteResponse is the acknowledgement returned by delete operations.
type DeleteResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}
