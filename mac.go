// MAC 地址，用作默认的实例标识符

package btcscript

import (
	"fmt"
	"net"
	"strings"
)

// macCandidate 记录候选网络接口的 MAC 地址和权重
type macCandidate struct {
	mac    string
	weight int
}

// weighInterface 为网络接口计算权重：非虚拟、已启用、具有 IPv4 地址的接口优先。
func weighInterface(name string, flags net.Flags, addrs []net.Addr) int {
	weight := 0
	if !strings.Contains(name, "vmnet") && !strings.Contains(name, "vboxnet") {
		weight += 10
	}
	if flags&net.FlagUp != 0 {
		weight += 10
	}
	for _, addr := range addrs {
		if ipNet, ok := addr.(*net.IPNet); ok && !ipNet.IP.IsLoopback() && ipNet.IP.To4() != nil {
			weight += 10
			break
		}
	}
	return weight
}

// GetPrimaryMACAddress 返回电脑上的主要MAC地址。
func GetPrimaryMACAddress() (string, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}

	var best macCandidate
	for _, iface := range interfaces {
		if iface.HardwareAddr == nil || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		c := macCandidate{
			mac:    iface.HardwareAddr.String(),
			weight: weighInterface(iface.Name, iface.Flags, addrs),
		}
		if c.weight > best.weight {
			best = c
		}
	}

	if best.mac == "" {
		return "", fmt.Errorf("no MAC address found")
	}

	return best.mac, nil
}

// PrimaryMACInstanceId 返回去掉分隔符的主要 MAC 地址，可直接用于日志文件名。
func PrimaryMACInstanceId() (string, error) {
	mac, err := GetPrimaryMACAddress()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(mac, ":", ""), nil
}
