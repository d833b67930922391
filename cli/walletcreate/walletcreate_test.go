package cliwalletcreate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalletCreateParams(t *testing.T) {
	dir := t.TempDir()

	require.ErrorContains(t, (&walletCreateParams{keyName: "peggy"}).validateFlags(), dataDirFlag)
	require.ErrorContains(t, (&walletCreateParams{dataDir: dir}).validateFlags(), keyNameFlag)
	require.Error(t, (&walletCreateParams{
		dataDir: dir, keyName: "peggy", privateKey: "0x01", forceRegenerate: true,
	}).validateFlags())

	params := &walletCreateParams{dataDir: dir, keyName: "peggy"}
	require.NoError(t, params.validateFlags())

	created, err := params.Execute()
	require.NoError(t, err)

	again, err := params.Execute()
	require.NoError(t, err)
	require.Equal(t, created.(*CmdResult).Address, again.(*CmdResult).Address) //nolint:forcetypeassert
	require.Empty(t, again.(*CmdResult).PrivateKey)                            //nolint:forcetypeassert

	imported, err := (&walletCreateParams{
		dataDir:        dir,
		keyName:        "peggy",
		privateKey:     "0x93c91e490bfd3736d17d04f53a10093e9cf2435309f4be1f5751381c8e201d23",
		showPrivateKey: true,
	}).Execute()
	require.NoError(t, err)

	result := imported.(*CmdResult) //nolint:forcetypeassert
	require.Equal(t, "93c91e490bfd3736d17d04f53a10093e9cf2435309f4be1f5751381c8e201d23", result.PrivateKey)
	require.Contains(t, result.GetOutput(), result.Address)
}
