package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mrz1836/go-slip39/internal/fileutil"
	"github.com/mrz1836/go-slip39/internal/secure"
)

const (
	// BackupExtension is the file extension for backups.
	BackupExtension = ".slip39bak"

	// BackupDirPermissions is the permission mode for the backup directory.
	BackupDirPermissions = 0o750

	// BackupFilePermissions is the permission mode for backup files.
	BackupFilePermissions = 0o600
)

// Service provides backup and restore operations over share bundles.
type Service struct {
	backupDir string
}

// NewService creates a new backup service rooted at backupDir.
func NewService(backupDir string) *Service {
	return &Service{backupDir: backupDir}
}

// Create encrypts mnemonics under password and writes the resulting
// backup file to the backup directory. The password should be zeroed
// by the caller after this call returns.
func (s *Service) Create(label string, mnemonics []string, extendable bool, groupThreshold int, memberCounts []int, password []byte) (*Backup, string, error) {
	bundle := BundleData{Mnemonics: mnemonics}

	dataJSON, err := json.Marshal(bundle)
	if err != nil {
		return nil, "", fmt.Errorf("serializing bundle: %w", err)
	}
	sb, err := secure.SecureBytesFromSlice(dataJSON)
	zeroBytes(dataJSON)
	if err != nil {
		return nil, "", fmt.Errorf("locking bundle: %w", err)
	}
	defer sb.Destroy()

	encryptedData, err := secure.EncryptBundleSecure(sb, string(password))
	if err != nil {
		return nil, "", fmt.Errorf("encrypting backup: %w", err)
	}

	manifest := NewManifest(label, extendable, groupThreshold, memberCounts)
	bk := NewBackup(manifest, encryptedData)

	backupPath, err := s.writeBackup(bk)
	if err != nil {
		return nil, "", fmt.Errorf("writing backup: %w", err)
	}

	return bk, backupPath, nil
}

// Verify verifies a backup file's integrity without decrypting.
func (s *Service) Verify(backupPath string) (*Manifest, error) {
	bk, err := s.readBackup(backupPath)
	if err != nil {
		return nil, err
	}

	if err := bk.Validate(); err != nil {
		return nil, err
	}

	return &bk.Manifest, nil
}

// VerifyWithDecryption verifies a backup and tests decryption.
// The password should be zeroed by the caller after this call returns.
func (s *Service) VerifyWithDecryption(backupPath string, password []byte) (*Manifest, error) {
	bk, err := s.readBackup(backupPath)
	if err != nil {
		return nil, err
	}

	if validationErr := bk.Validate(); validationErr != nil {
		return nil, validationErr
	}

	sb, err := secure.DecryptBundleSecure(bk.EncryptedData, string(password))
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	sb.Destroy()

	return &bk.Manifest, nil
}

// Restore decrypts a backup and returns its mnemonic sentences.
// The password should be zeroed by the caller after this call returns.
func (s *Service) Restore(backupPath string, password []byte) ([]string, error) {
	bk, err := s.readBackup(backupPath)
	if err != nil {
		return nil, err
	}

	if validationErr := bk.Validate(); validationErr != nil {
		return nil, validationErr
	}

	sb, err := secure.DecryptBundleSecure(bk.EncryptedData, string(password))
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	defer sb.Destroy()

	var bundle BundleData
	if err := json.Unmarshal(sb.Bytes(), &bundle); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	return bundle.Mnemonics, nil
}

// List returns all backup files in the backup directory.
func (s *Service) List() ([]string, error) {
	if err := os.MkdirAll(s.backupDir, BackupDirPermissions); err != nil {
		return nil, fmt.Errorf("creating backup directory: %w", err)
	}

	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	var backups []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == BackupExtension {
			backups = append(backups, entry.Name())
		}
	}

	return backups, nil
}

// writeBackup writes a backup to the backup directory.
//
//nolint:funcorder // Keeping helper methods together
func (s *Service) writeBackup(bk *Backup) (string, error) {
	if err := os.MkdirAll(s.backupDir, BackupDirPermissions); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02-150405")
	label := bk.Manifest.Label
	if label == "" {
		label = "bundle"
	}
	filename := fmt.Sprintf("%s-%s%s", label, timestamp, BackupExtension)
	backupPath := filepath.Join(s.backupDir, filename)

	data, err := json.MarshalIndent(bk, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing backup: %w", err)
	}

	if err := fileutil.WriteAtomic(backupPath, data, BackupFilePermissions); err != nil {
		return "", fmt.Errorf("writing backup file: %w", err)
	}

	return backupPath, nil
}

// readBackup reads a backup from a file.
//
//nolint:funcorder // Keeping helper methods together
func (s *Service) readBackup(path string) (*Backup, error) {
	// #nosec G304 -- path is from user input
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBackupNotFound
		}
		return nil, fmt.Errorf("reading backup file: %w", err)
	}

	var bk Backup
	if err := json.Unmarshal(data, &bk); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	return &bk, nil
}

// BackupPath returns the path to a backup file.
func (s *Service) BackupPath(filename string) string {
	return filepath.Join(s.backupDir, filename)
}

// zeroBytes overwrites b with zeros in place.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
