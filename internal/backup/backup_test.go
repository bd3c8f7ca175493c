package backup_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/go-slip39/internal/backup"
	"github.com/mrz1836/go-slip39/internal/secure"
)

func TestMain(m *testing.M) {
	secure.SetBundleWorkFactor(10) // Fast for tests
	os.Exit(m.Run())
}

func testMnemonics() []string {
	return []string{
		"shield one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen seventeen eighteen nineteen",
		"shield one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen seventeen eighteen twenty",
		"shield one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen seventeen eighteen twentyone",
	}
}

// --- manifest.go tests ---

func TestNewManifest(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC()
	manifest := backup.NewManifest("mybundle", false, 1, []int{3, 5})
	after := time.Now().UTC()

	assert.Equal(t, "mybundle", manifest.Label)
	assert.Equal(t, 1, manifest.GroupThreshold)
	assert.Equal(t, 2, manifest.GroupCount)
	assert.Equal(t, []int{3, 5}, manifest.MemberCounts)
	assert.Equal(t, "age", manifest.EncryptionMethod)
	assert.False(t, manifest.Extendable)
	assert.True(t, manifest.CreatedAt.Equal(manifest.CreatedAt.UTC()), "CreatedAt should be UTC")
	assert.True(t, !manifest.CreatedAt.Before(before) && !manifest.CreatedAt.After(after),
		"CreatedAt should be between before and after")
}

func TestCalculateChecksum(t *testing.T) {
	t.Parallel()

	t.Run("deterministic output", func(t *testing.T) {
		t.Parallel()
		data := []byte("test data for checksum")
		checksum1 := backup.CalculateChecksum(data)
		checksum2 := backup.CalculateChecksum(data)
		assert.Equal(t, checksum1, checksum2)
		assert.Len(t, checksum1, 64) // SHA256 hex is 64 chars
	})

	t.Run("different data different checksum", func(t *testing.T) {
		t.Parallel()
		checksum1 := backup.CalculateChecksum([]byte("data one"))
		checksum2 := backup.CalculateChecksum([]byte("data two"))
		assert.NotEqual(t, checksum1, checksum2)
	})
}

func TestVerifyChecksum(t *testing.T) {
	t.Parallel()

	t.Run("matching checksum passes", func(t *testing.T) {
		t.Parallel()
		data := []byte("verify me")
		checksum := backup.CalculateChecksum(data)
		err := backup.VerifyChecksum(data, checksum)
		assert.NoError(t, err)
	})

	t.Run("mismatched checksum returns error", func(t *testing.T) {
		t.Parallel()
		data := []byte("original data")
		wrongChecksum := backup.CalculateChecksum([]byte("different data"))
		err := backup.VerifyChecksum(data, wrongChecksum)
		assert.ErrorIs(t, err, backup.ErrBackupCorrupted)
	})
}

func TestNewBackup(t *testing.T) {
	t.Parallel()

	manifest := backup.NewManifest("bundle", false, 1, []int{1})
	encryptedData := []byte("encrypted-content")

	b := backup.NewBackup(manifest, encryptedData)

	assert.Equal(t, backup.BackupVersion, b.Version)
	assert.Equal(t, manifest, b.Manifest)
	assert.Equal(t, encryptedData, b.EncryptedData)
	assert.Equal(t, backup.CalculateChecksum(encryptedData), b.Checksum)
}

func TestBackup_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid backup passes", func(t *testing.T) {
		t.Parallel()
		manifest := backup.NewManifest("bundle", false, 1, []int{1})
		b := backup.NewBackup(manifest, []byte("data"))
		err := b.Validate()
		assert.NoError(t, err)
	})

	t.Run("wrong version fails", func(t *testing.T) {
		t.Parallel()
		manifest := backup.NewManifest("bundle", false, 1, []int{1})
		b := backup.NewBackup(manifest, []byte("data"))
		b.Version = 999
		err := b.Validate()
		require.ErrorIs(t, err, backup.ErrInvalidFormat)
		assert.Contains(t, err.Error(), "unsupported version")
	})

	t.Run("missing group layout fails", func(t *testing.T) {
		t.Parallel()
		manifest := backup.NewManifest("bundle", false, 1, nil)
		b := backup.NewBackup(manifest, []byte("data"))
		err := b.Validate()
		require.ErrorIs(t, err, backup.ErrInvalidFormat)
		assert.Contains(t, err.Error(), "missing group layout")
	})

	t.Run("empty data fails", func(t *testing.T) {
		t.Parallel()
		manifest := backup.NewManifest("bundle", false, 1, []int{1})
		b := backup.NewBackup(manifest, []byte{})
		err := b.Validate()
		require.ErrorIs(t, err, backup.ErrInvalidFormat)
		assert.Contains(t, err.Error(), "no encrypted data")
	})

	t.Run("bad checksum fails", func(t *testing.T) {
		t.Parallel()
		manifest := backup.NewManifest("bundle", false, 1, []int{1})
		b := backup.NewBackup(manifest, []byte("data"))
		b.Checksum = "wrong-checksum"
		err := b.Validate()
		assert.ErrorIs(t, err, backup.ErrBackupCorrupted)
	})
}

// --- backup.go Service tests ---

func TestNewService(t *testing.T) {
	t.Parallel()

	svc := backup.NewService("/tmp/backups")
	assert.NotNil(t, svc)
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	svc := backup.NewService(tmpDir)
	password := []byte("test-password-123") // gitleaks:allow
	mnemonics := testMnemonics()

	b, backupPath, err := svc.Create("testbundle", mnemonics, false, 1, []int{3}, password)

	require.NoError(t, err)
	assert.NotNil(t, b)
	assert.NotEmpty(t, backupPath)
	assert.Equal(t, "testbundle", b.Manifest.Label)
	assert.Equal(t, backup.BackupVersion, b.Version)
	assert.NotEmpty(t, b.EncryptedData)
	assert.Equal(t, backup.CalculateChecksum(b.EncryptedData), b.Checksum)

	info, err := os.Stat(backupPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	assert.Equal(t, []int{3}, b.Manifest.MemberCounts)
}

func TestService_Create_WriteFailure(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	svc := backup.NewService(tmpDir)

	require.NoError(t, os.Chmod(tmpDir, 0o500)) //nolint:gosec // G302: Test uses intentionally restrictive perms
	defer func() {
		_ = os.Chmod(tmpDir, 0o700) //nolint:gosec // G302: Restoring perms in test cleanup
	}()

	_, _, err := svc.Create("testbundle", testMnemonics(), false, 1, []int{3}, []byte("test-password-123")) // gitleaks:allow
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing backup")
}

func TestService_Verify(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	svc := backup.NewService(tmpDir)
	password := []byte("test-password-123") // gitleaks:allow

	_, backupPath, err := svc.Create("testbundle", testMnemonics(), false, 1, []int{3}, password)
	require.NoError(t, err)

	manifest, err := svc.Verify(backupPath)
	require.NoError(t, err)
	assert.Equal(t, "testbundle", manifest.Label)
}

func TestService_Verify_Errors(t *testing.T) {
	t.Parallel()

	t.Run("file not found", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		svc := backup.NewService(tmpDir)
		_, err := svc.Verify(filepath.Join(tmpDir, "nonexistent.slip39bak"))
		assert.ErrorIs(t, err, backup.ErrBackupNotFound)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		svc := backup.NewService(tmpDir)

		badPath := filepath.Join(tmpDir, "bad.slip39bak")
		err := os.WriteFile(badPath, []byte("not json"), 0o600)
		require.NoError(t, err)

		_, err = svc.Verify(badPath)
		assert.ErrorIs(t, err, backup.ErrInvalidFormat)
	})

	t.Run("validation failure", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		svc := backup.NewService(tmpDir)

		invalidBackup := backup.Backup{
			Version:       999, // Invalid version
			Manifest:      backup.Manifest{Label: "test"},
			EncryptedData: []byte("data"),
			Checksum:      backup.CalculateChecksum([]byte("data")),
		}
		data, _ := json.Marshal(invalidBackup)
		invalidPath := filepath.Join(tmpDir, "invalid.slip39bak")
		err := os.WriteFile(invalidPath, data, 0o600)
		require.NoError(t, err)

		_, err = svc.Verify(invalidPath)
		assert.ErrorIs(t, err, backup.ErrInvalidFormat)
	})
}

func TestService_VerifyWithDecryption(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	svc := backup.NewService(tmpDir)
	password := []byte("test-password-123") // gitleaks:allow

	_, backupPath, err := svc.Create("testbundle", testMnemonics(), false, 1, []int{3}, password)
	require.NoError(t, err)

	t.Run("correct password works", func(t *testing.T) {
		manifest, err := svc.VerifyWithDecryption(backupPath, password)
		require.NoError(t, err)
		assert.Equal(t, "testbundle", manifest.Label)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		_, err := svc.VerifyWithDecryption(backupPath, []byte("wrong-password"))
		assert.ErrorIs(t, err, backup.ErrDecryptionFailed)
	})
}

func TestService_Restore(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	svc := backup.NewService(tmpDir)
	password := []byte("test-password-123") // gitleaks:allow
	mnemonics := testMnemonics()

	_, backupPath, err := svc.Create("testbundle", mnemonics, false, 1, []int{3}, password)
	require.NoError(t, err)

	restored, err := svc.Restore(backupPath, password)
	require.NoError(t, err)
	assert.Equal(t, mnemonics, restored)
}

func TestService_Restore_WrongPassword(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	svc := backup.NewService(tmpDir)
	password := []byte("test-password-123") // gitleaks:allow

	_, backupPath, err := svc.Create("testbundle", testMnemonics(), false, 1, []int{3}, password)
	require.NoError(t, err)

	_, err = svc.Restore(backupPath, []byte("wrong-password"))
	assert.ErrorIs(t, err, backup.ErrDecryptionFailed)
}

func TestService_List(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	svc := backup.NewService(tmpDir)

	t.Run("empty directory", func(t *testing.T) {
		backups, err := svc.List()
		require.NoError(t, err)
		assert.Empty(t, backups)
	})

	t.Run("filters by extension and ignores directories", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "bundle1.slip39bak"), []byte("{}"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "bundle2.slip39bak"), []byte("{}"), 0o600))

		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "readme.txt"), []byte("hi"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "backup.json"), []byte("{}"), 0o600))

		require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "subdir.slip39bak"), 0o750))

		backups, err := svc.List()
		require.NoError(t, err)
		assert.Len(t, backups, 2)
		assert.Contains(t, backups, "bundle1.slip39bak")
		assert.Contains(t, backups, "bundle2.slip39bak")
	})
}

func TestService_BackupPath(t *testing.T) {
	t.Parallel()

	svc := backup.NewService("/var/backups")

	path := svc.BackupPath("mybackup.slip39bak")
	assert.Equal(t, "/var/backups/mybackup.slip39bak", path)
}
