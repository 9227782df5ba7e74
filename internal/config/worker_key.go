package config

type WorkerKeyStruct struct {
	MaterializeRetryQueue string
}

var WorkerKey = &WorkerKeyStruct{
	MaterializeRetryQueue: "materialize_retry_queue",
}
