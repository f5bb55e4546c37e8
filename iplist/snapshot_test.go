package iplist

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnapshotList(t *testing.T) {
	l, err := fromList(t, []string{"192.168.1.1", "bad", "10.0.0.1"}, true)
	require.NoError(t, err)

	s := l.Snapshot()
	require.Equal(t, Snapshot{IgnoreInvalid: true, Addresses: []string{"10.0.0.1", "192.168.1.1"}}, s)

	restored, err := Restore(s, quietLogger())
	require.NoError(t, err)
	require.True(t, l.Equal(restored))
	require.Equal(t, "", restored.FilePath())
	require.True(t, restored.IgnoreInvalid())
}

func TestSnapshotFile(t *testing.T) {
	path := writeFile(t, "192.168.1.1\n::1\n")
	l, err := fromFile(t, path, true)
	require.NoError(t, err)

	s := l.Snapshot()
	require.Equal(t, Snapshot{FilePath: path, IgnoreInvalid: true}, s)

	restored, err := Restore(s, quietLogger())
	require.NoError(t, err)
	require.True(t, l.Equal(restored))
	require.Equal(t, path, restored.FilePath())
}

func TestSnapshotEmptyList(t *testing.T) {
	l, err := fromList(t, []string{}, false)
	require.NoError(t, err)

	restored, err := Restore(l.Snapshot(), quietLogger())
	require.NoError(t, err)
	require.Equal(t, 0, restored.Len())
	require.Equal(t, "IPList with 0 IPs from list", restored.String())
}

func TestRestoreRejectsBothSources(t *testing.T) {
	_, err := Restore(Snapshot{FilePath: "ips.txt", Addresses: []string{"10.0.0.1"}}, quietLogger())
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestJSONRoundTrip(t *testing.T) {
	l, err := fromList(t, []string{"8.8.8.8", "1.1.1.1"}, false)
	require.NoError(t, err)

	data, err := json.Marshal(l)
	require.NoError(t, err)
	require.JSONEq(t, `{"ignore_invalid":false,"addresses":["1.1.1.1","8.8.8.8"]}`, string(data))

	var decoded IPList
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.True(t, l.Equal(&decoded))
	require.Equal(t, "IPList with 2 IPs from list", decoded.String())
}

func TestJSONFileBacked(t *testing.T) {
	path := writeFile(t, "10.0.0.1\n")
	l, err := fromFile(t, path, false)
	require.NoError(t, err)

	data, err := json.Marshal(l)
	require.NoError(t, err)

	// the restored list re-reads the file
	require.NoError(t, os.WriteFile(path, []byte("10.0.0.2\n"), 0o644))
	var decoded IPList
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, []string{"10.0.0.2"}, decoded.Addresses())
	require.Equal(t, path, decoded.FilePath())
}

func TestJSONInvalidAddresses(t *testing.T) {
	var decoded IPList
	err := json.Unmarshal([]byte(`{"ignore_invalid":false,"addresses":["::1"]}`), &decoded)
	require.ErrorIs(t, err, ErrIPv4Only)
}
