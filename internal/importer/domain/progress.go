package domain

// UploadProgress is a live snapshot of a staged upload.
type UploadProgress struct {
	// Progress is a percentage in [0,100] rounded to one decimal.
	// A would-be 100 is reported as 99.5: the last byte leaving the
	// client does not mean the server is done with the object.
	Progress float64

	// Speed is the average transfer rate since the upload started, in KB/s.
	Speed float64

	// RestTime is the estimated seconds remaining at the average rate.
	RestTime float64
}
