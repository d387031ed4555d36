// Package demux splits a parsed multi-device frame into per-device,
// per-modality streams named by role (EEG_1, EMG_2, IMU_1, ...).
package demux
